package config

import (
	"testing"
	"time"
)

func clearOracleKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestLoad_EnvironmentOnly(t *testing.T) {
	clearOracleKeys(t)
	t.Setenv("DATABASE_DSN", "host=localhost user=mockmate dbname=mockmate")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("ORACLE_PROVIDER", "mock")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 72*time.Hour {
		t.Fatalf("ttl = %v, want default 72h", cfg.Auth.TokenTTL)
	}
	if cfg.Quota.DailyCap != 5 {
		t.Fatalf("daily cap = %d, want default 5", cfg.Quota.DailyCap)
	}
	if cfg.Oracle.Provider != "mock" {
		t.Fatalf("oracle provider = %q, want mock", cfg.Oracle.Provider)
	}
	if cfg.Oracle.Timeout != 30*time.Second {
		t.Fatalf("oracle timeout = %v, want default 30s", cfg.Oracle.Timeout)
	}
}

func TestLoad_RequiredFields(t *testing.T) {
	clearOracleKeys(t)
	t.Setenv("ORACLE_PROVIDER", "mock")

	t.Setenv("DATABASE_DSN", "")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing database.dsn")
	}

	t.Setenv("DATABASE_DSN", "host=localhost")
	t.Setenv("AUTH_JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing auth.jwt_secret")
	}
}

func TestLoad_OracleKeyDiscovery(t *testing.T) {
	clearOracleKeys(t)
	t.Setenv("DATABASE_DSN", "host=localhost")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("ORACLE_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Oracle.Provider != "gemini" {
		t.Fatalf("provider = %q, want discovered gemini", cfg.Oracle.Provider)
	}
	if cfg.Oracle.Gemini.APIKey != "g-key" {
		t.Fatalf("key = %q", cfg.Oracle.Gemini.APIKey)
	}
}
