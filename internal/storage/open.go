package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"johar-connect/internal/config"
	"johar-connect/internal/db"
)

// Open construye el backend indicado por cfg.TokenStore. La función devuelta
// libera las conexiones abiertas y siempre es no nula.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (KeyValueStore, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() {}

	switch strings.ToLower(strings.TrimSpace(cfg.TokenStore)) {
	case "memory":
		return NewMemoryStore(), noop, nil
	case "", "file":
		store, err := NewFileStore(cfg.TokenFile)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, noop, fmt.Errorf("redis storage requires REDIS_ADDR")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("storage backend ready", zap.String("backend", "redis"))
		return NewRedisStore(client), func() { client.Close() }, nil
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, 2)
		if err != nil {
			return nil, noop, err
		}
		store, err := NewPostgresStore(pool, cfg.TokenTable)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Info("storage backend ready", zap.String("backend", "postgres"), zap.String("table", cfg.TokenTable))
		return store, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.TokenStore)
	}
}
