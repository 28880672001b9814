package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: %q", "pdf")
	assert.Equal(t, `INVALID_FORMAT: invalid format: "pdf"`, err.Error())

	wrapped := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open %s", "docs.json")
	assert.Equal(t, "FILE_NOT_FOUND: open docs.json: file does not exist", wrapped.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open docs.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var target *Error
	require.ErrorAs(t, fmt.Errorf("load: %w", err), &target)
	assert.Equal(t, ErrCodeFileNotFound, target.Code)
}

// A docs.json with a bad entry name fails as the decoder reports it: an
// INVALID_DOCS error around the INVALID_NAME validation error.
func decodeFailure() error {
	nameErr := ValidateEntryName("map list")
	return Wrap(ErrCodeInvalidDocs, Wrap(ErrCodeInvalidName, nameErr, "value map list in List"), "module 0")
}

func TestIsMatchesOutermostCode(t *testing.T) {
	err := decodeFailure()

	assert.True(t, Is(err, ErrCodeInvalidDocs))
	assert.False(t, Is(err, ErrCodeInvalidName), "only the outermost code counts")
	assert.Equal(t, ErrCodeInvalidDocs, GetCode(err))

	var inner *Error
	require.ErrorAs(t, errors.Unwrap(err), &inner)
	assert.Equal(t, ErrCodeInvalidName, inner.Code)
}

func TestIsThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("load config: %w", New(ErrCodeInvalidConfig, "unknown key render.widht"))
	assert.True(t, Is(err, ErrCodeInvalidConfig))
	assert.Equal(t, ErrCodeInvalidConfig, GetCode(err))
}

func TestGetCodePlainError(t *testing.T) {
	assert.Equal(t, Code(""), GetCode(context.Canceled))
	assert.Equal(t, Code(""), GetCode(nil))
	assert.False(t, Is(nil, ErrCodeInternal))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", New(ErrCodeNotFound, "module %q not found", "Html"), `module "Html" not found`},
		{"invalid name", ValidateModuleName("json.decode"), `invalid module name: "json.decode"`},
		{"wrapped keeps outer message", decodeFailure(), "module 0"},
		{"network", Wrap(ErrCodeNetwork, context.DeadlineExceeded, "connect to redis at %s", "localhost:6379"), "connect to redis at localhost:6379"},
		{"plain error", context.Canceled, "context canceled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
