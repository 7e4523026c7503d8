package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristykoh/krispyledger-web/internal/config"
	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage/redis"
)

func TestRedisOptions(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	t.Run("ttl applied to saved ledgers", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.RedisPrefix = "test:"
		cfg.RedisTTL = time.Hour

		store := redis.NewFromClient(client, redisOptions(cfg)...)
		require.NoError(t, store.Save(ctx, "chat-1", models.NewLedgerDocument()))

		assert.True(t, mr.Exists("test:ledger:chat-1"))
		assert.Equal(t, time.Hour, mr.TTL("test:ledger:chat-1"))
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.RedisPrefix = "test:"

		store := redis.NewFromClient(client, redisOptions(cfg)...)
		require.NoError(t, store.Save(ctx, "chat-2", models.NewLedgerDocument()))

		assert.Equal(t, time.Duration(0), mr.TTL("test:ledger:chat-2"))
	})
}
