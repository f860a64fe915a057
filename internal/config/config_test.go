package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LoginPath != "/login" {
		t.Fatalf("expected default login path, got %q", cfg.LoginPath)
	}
	if cfg.TokenStore != "file" {
		t.Fatalf("expected file token store by default, got %q", cfg.TokenStore)
	}
	if cfg.APITimeout != 0 {
		t.Fatalf("expected no timeout by default, got %v", cfg.APITimeout)
	}
	if cfg.JWTAccessTTLMinutes != 30 {
		t.Fatalf("expected 30 minute access ttl, got %d", cfg.JWTAccessTTLMinutes)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("API_URL", "https://api.example.com/api")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("TOKEN_STORE", "redis")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIURL != "https://api.example.com/api" {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.APITimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %+v", cfg.AllowedOrigins)
	}
	if cfg.TokenStore != "redis" {
		t.Fatalf("unexpected token store %q", cfg.TokenStore)
	}
}
