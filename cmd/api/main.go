package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"johar-connect/internal/config"
	"johar-connect/internal/db"
	apihttp "johar-connect/internal/http"
	"johar-connect/internal/repository"
	"johar-connect/internal/service"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var userRepo repository.UserRepository = repository.NewMemoryUserRepository()
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, 10)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		pgUsers := repository.NewPgUserRepository(pool)
		if err := pgUsers.EnsureSchema(ctx); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		userRepo = pgUsers
	}

	var (
		limiter     service.RateLimiter
		revoked     service.RevokedTokenStore
		redisClient *redis.Client
	)
	window := time.Minute
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, window, cfg.RateLimitPerMinute)
			revoked = service.NewRedisRevokedTokenStore(redisClient)
		}
		cancel()
	}
	if limiter == nil {
		limiter = service.NewRateLimiter(window, cfg.RateLimitPerMinute)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = uuid.NewString()
		logger.Warn("jwt secret not configured, using an ephemeral one")
	}
	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		revoked,
	)

	userSvc := service.NewUserService(logger, userRepo)
	if err := userSvc.SeedDemoUsers(ctx); err != nil {
		logger.Fatal("seed demo users", zap.Error(err))
	}

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	resourceHandler := apihttp.NewResourceHandler(logger, apihttp.NewResourceServices())
	router := apihttp.NewRouter(logger, apihttp.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Limiter:        limiter,
		Environment:    cfg.Environment,
	}, jwtSvc, userHandler, resourceHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
