package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Fatalf("port %q, want 8080", cfg.App.Port)
	}
	if !cfg.App.IsDevelopment() {
		t.Fatal("expected development env by default")
	}
	if cfg.Auth.TokenTTL() != 24*time.Hour {
		t.Fatalf("ttl %v, want 24h", cfg.Auth.TokenTTL())
	}
	if !cfg.Auth.UsingDefaultSecret() {
		t.Fatal("expected the insecure fallback secret by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Addr() != "0.0.0.0:9090" {
		t.Fatalf("addr %q", cfg.App.Addr())
	}
	if cfg.Auth.UsingDefaultSecret() {
		t.Fatal("explicit secret must not count as the fallback")
	}
	if cfg.Auth.TokenTTL() != 2*time.Hour {
		t.Fatalf("ttl %v, want 2h", cfg.Auth.TokenTTL())
	}
}

func TestGetEnvAsIntBadValue(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("bcrypt cost %d, want fallback 10", cfg.Auth.BcryptCost)
	}
}
