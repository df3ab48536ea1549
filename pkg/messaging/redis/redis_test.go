package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromConfig(t *testing.T) {
	opts, err := Config{
		URL:          "redis://:secret@cache.internal:6380/2",
		MaxRetries:   4,
		RetryBackoff: 50 * time.Millisecond,
		PoolSize:     8,
		MinIdleConns: 1,
	}.Options()
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 4, opts.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, opts.MinRetryBackoff)
	assert.Equal(t, 8, opts.PoolSize)
}

func TestOptionsRejectsBadURL(t *testing.T) {
	_, err := Config{URL: "http://not-redis"}.Options()
	assert.Error(t, err)
}
