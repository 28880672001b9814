package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisCacheCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{
		Addr:    "127.0.0.1:1",
		Backoff: Backoff{Attempts: 2, Delay: time.Millisecond},
	})
	assert.ErrorIs(t, err, ErrNetwork)
}
