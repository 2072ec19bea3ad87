package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/ErlanBelekov/bookstore-catalog/config"
)

const testSecret = "config-test-secret-at-least-32-chars"

func TestLoad_MemoryStoreWithoutDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE", "memory")
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "local" {
		t.Errorf("env = %q, want local", cfg.Env)
	}
	if cfg.TokenTTL != 0 {
		t.Errorf("token ttl = %v, want 0", cfg.TokenTTL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("request timeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("bcrypt cost = %d, want 12", cfg.BcryptCost)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoad_ShortSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("STORE", "memory")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for short JWT_SECRET")
	}
}

func TestLoad_ProductionRequiresResend(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE", "memory")
	t.Setenv("ENV", "production")
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("RESEND_FROM", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing resend settings in production")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		cfg := &config.Config{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
