package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.AttemptTTL != 10*time.Minute {
		t.Errorf("expected default attempt TTL 10m, got %v", cfg.AttemptTTL)
	}
	if cfg.GoogleRedirectURI == "" {
		t.Error("expected default redirect URI")
	}
	if cfg.RedisURL != "" && cfg.RedisURL == cfg.DatabaseURL {
		t.Error("redis and database URLs should differ")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_SCOPES", "https://www.googleapis.com/auth/gmail.readonly,email")
	t.Setenv("OAUTH_ATTEMPT_TTL", "5m")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com,https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("unexpected redis URL: %s", cfg.RedisURL)
	}
	if cfg.GoogleClientID != "client-id" {
		t.Errorf("unexpected client ID: %s", cfg.GoogleClientID)
	}
	if len(cfg.GoogleScopes) != 2 {
		t.Errorf("expected 2 scopes, got %d", len(cfg.GoogleScopes))
	}
	if cfg.AttemptTTL != 5*time.Minute {
		t.Errorf("expected attempt TTL 5m, got %v", cfg.AttemptTTL)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("expected 2 allowed origins, got %d", len(cfg.AllowedOrigins))
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("OAUTH_ATTEMPT_TTL", "0s")

	_, err := Load()
	if err == nil {
		t.Error("expected error for zero attempt TTL")
	}
}
