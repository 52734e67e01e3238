package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env development, got %s", cfg.Env)
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("expected default token TTL 1h, got %s", cfg.AccessTokenTTL)
	}
	if cfg.BookingsTable != "bookings" {
		t.Fatalf("expected default bookings table, got %s", cfg.BookingsTable)
	}
	if cfg.EmailProvider != "stub" {
		t.Fatalf("expected default email provider stub, got %s", cfg.EmailProvider)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "5.5")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m TTL, got %s", cfg.AccessTokenTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://a.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 5.5 {
		t.Fatalf("expected rps 5.5, got %v", cfg.RateLimitRPS)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected normalized provider sendgrid, got %s", cfg.EmailProvider)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	t.Setenv("RATE_LIMIT_BURST", "lots")

	cfg := Load()

	if cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("expected fallback TTL 1h, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RateLimitBurst != 40 {
		t.Fatalf("expected fallback burst 40, got %d", cfg.RateLimitBurst)
	}
}
