package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", LogInfo, func(l *log.Logger) { l.Info("rendered documentation") }, true},
		{"debug at info level", LogInfo, func(l *log.Logger) { l.Debug("cache miss") }, false},
		{"debug at debug level", LogDebug, func(l *log.Logger) { l.Debug("cache miss") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("loaded config")
	assert.Contains(t, buf.String(), "loaded config")
}

func TestProgressDoneReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Rendered 2 modules")

	assert.Regexp(t, regexp.MustCompile(`Rendered 2 modules \(\d+(\.\d+)?(ms|s)\)`), buf.String())
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)

	assert.Same(t, custom, loggerFromContext(withLogger(context.Background(), custom)))
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
}

func TestRootCommandAttachesLogger(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	root := c.RootCommand()

	var got *log.Logger
	root.AddCommand(&cobra.Command{
		Use: "whoami",
		RunE: func(cmd *cobra.Command, args []string) error {
			got = loggerFromContext(cmd.Context())
			return nil
		},
	})
	root.SetArgs([]string{"whoami"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Same(t, c.Logger, got)
	assert.Contains(t, buf.String(), "loaded config")
}

func TestRunnerUsesCLILogger(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)

	runner, err := c.newRunner(context.Background(), true)
	require.NoError(t, err)
	defer runner.Close()

	assert.Same(t, c.Logger, runner.Logger)
	assert.Equal(t, c.Config.Cache.TTL.Duration, runner.TTL)
}
