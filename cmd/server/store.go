package main

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kristykoh/krispyledger-web/internal/config"
	"github.com/kristykoh/krispyledger-web/internal/storage"
	"github.com/kristykoh/krispyledger-web/internal/storage/dynamodb"
	"github.com/kristykoh/krispyledger-web/internal/storage/memory"
	"github.com/kristykoh/krispyledger-web/internal/storage/mongo"
	"github.com/kristykoh/krispyledger-web/internal/storage/postgres"
	"github.com/kristykoh/krispyledger-web/internal/storage/redis"
	"github.com/kristykoh/krispyledger-web/internal/storage/sqlite"
)

// openStore builds the ledger store selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (storage.LedgerStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		slog.Warn("Using in-memory store, ledgers are lost on restart")
		return memory.NewStore(), nil

	case config.DriverSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.StoreDriver, "database", cfg.DBPath)
		return store, nil

	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.RunMigrations(ctx); err != nil {
			store.Close()
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.StoreDriver)
		return store, nil

	case config.DriverRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redisOptions(cfg)...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.StoreDriver, "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
		return store, nil

	case config.DriverDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		store, err := dynamodb.NewFromConfig(awsCfg, cfg.DynamoTable)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.StoreDriver, "table", cfg.DynamoTable)
		return store, nil

	case config.DriverMongo:
		store, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.StoreDriver, "database", cfg.MongoDatabase)
		return store, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// redisOptions maps the Redis store settings onto store options.
func redisOptions(cfg *config.Config) []redis.Option {
	opts := []redis.Option{redis.WithPrefix(cfg.RedisPrefix + "ledger:")}
	if cfg.RedisTTL > 0 {
		opts = append(opts, redis.WithTTL(cfg.RedisTTL))
	}
	return opts
}

// openLocker returns a Redis locker, reusing the store's connection when the
// store is Redis too. The returned close func releases a dedicated client.
func openLocker(ctx context.Context, cfg *config.Config, store storage.LedgerStore) (storage.DistributedLocker, func() error, error) {
	if rs, ok := store.(*redis.Store); ok {
		return redis.NewLocker(rs.Client(), cfg.RedisPrefix), func() error { return nil }, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis for locking: %w", err)
	}
	return redis.NewLocker(client, cfg.RedisPrefix), client.Close, nil
}
