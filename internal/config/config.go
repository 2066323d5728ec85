// Package config resolves service configuration from config.yaml and
// environment variables, environment taking precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mockmate/mockmate/internal/llm"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Quota    QuotaConfig
	Oracle   llm.Config
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	DSN string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type QuotaConfig struct {
	DailyCap int
}

// Load reads config.yaml from ./configs (when present) with environment
// variable overrides, then validates the required fields.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", 8080)
	v.SetDefault("auth.token_ttl", "72h")
	v.SetDefault("quota.daily_cap", 5)
	v.SetDefault("oracle.timeout", "30s")

	if err := v.ReadInConfig(); err != nil {
		// Environment-only configuration is fine in production.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("server.port"),
		},
		Database: DatabaseConfig{
			DSN: v.GetString("database.dsn"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		Quota: QuotaConfig{
			DailyCap: v.GetInt("quota.daily_cap"),
		},
		Oracle: oracleConfig(v),
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	if err := cfg.Oracle.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// oracleConfig builds the oracle provider config: explicit settings win,
// otherwise standard API key env vars are probed.
func oracleConfig(v *viper.Viper) llm.Config {
	cfg := llm.DefaultConfig()

	if p := v.GetString("oracle.provider"); p != "" {
		cfg.Provider = p
	} else if discovered, ok := llm.DiscoverConfig(); ok {
		cfg = discovered
	}

	if k := v.GetString("oracle.anthropic.api_key"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := v.GetString("oracle.anthropic.model"); m != "" {
		cfg.Anthropic.Model = m
	}
	if k := v.GetString("oracle.openai.api_key"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := v.GetString("oracle.openai.model"); m != "" {
		cfg.OpenAI.Model = m
	}
	if k := v.GetString("oracle.gemini.api_key"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := v.GetString("oracle.gemini.model"); m != "" {
		cfg.Gemini.Model = m
	}
	if k := v.GetString("oracle.openrouter.api_key"); k != "" {
		cfg.OpenRouter.APIKey = k
	}

	if t := v.GetDuration("oracle.timeout"); t > 0 {
		cfg.Timeout = t
	}

	return cfg
}
