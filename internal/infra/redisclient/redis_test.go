package redisclient

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/config"
)

func TestConnect(t *testing.T) {
	t.Run("disabled without url", func(t *testing.T) {
		assert.Nil(t, Connect(&config.RedisConfig{}))
	})

	t.Run("invalid url", func(t *testing.T) {
		assert.Nil(t, Connect(&config.RedisConfig{URL: "://nope"}))
	})

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := Connect(&config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
		require.NotNil(t, client)
		defer client.Close()
	})
}
