package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del cliente y del backend de desarrollo.
type Config struct {
	APIURL     string        `env:"API_URL" envDefault:"http://localhost:8000/api"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"0s"`
	LoginPath  string        `env:"LOGIN_PATH" envDefault:"/login"`

	TokenStore string `env:"TOKEN_STORE" envDefault:"file"`
	TokenFile  string `env:"TOKEN_FILE" envDefault:".johar/storage.json"`
	TokenTable string `env:"TOKEN_TABLE" envDefault:"client_storage"`

	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	Environment         string   `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort            string   `env:"HTTP_PORT" envDefault:"8000"`
	JWTSecret           string   `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int      `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"30"`
	AllowedOrigins      []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	RateLimitPerMinute  int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
