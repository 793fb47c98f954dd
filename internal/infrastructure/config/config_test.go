package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func validConfig() *Config {
	return &Config{
		JWTSecret: "secret",
		Alma: AlmaConfig{
			SignupURL:     "https://alma.example.com/signup",
			GetUserURL:    "https://alma.example.com/user",
			UpdateUserURL: "https://alma.example.com/user",
			DeleteUserURL: "https://alma.example.com/user",
		},
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Validate_MissingSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("expected JWT_SECRET error, got %v", err)
	}
}

func TestConfig_Validate_AlmaURLs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing signup url",
			mutate: func(c *Config) { c.Alma.SignupURL = "" },
			want:   "ALMA_SIGNUP_URL is required",
		},
		{
			name:   "relative url",
			mutate: func(c *Config) { c.Alma.GetUserURL = "/user" },
			want:   "ALMA_GET_USER_URL is not a valid URL",
		},
		{
			name:   "missing scheme",
			mutate: func(c *Config) { c.Alma.DeleteUserURL = "alma.example.com/user" },
			want:   "ALMA_DELETE_USER_URL is not a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(nil),
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %q", cfg.Env)
	}
	if cfg.Database.MaxOpenConns != 10 || cfg.Database.MaxIdleConns != 5 {
		t.Errorf("unexpected pool defaults: %+v", cfg.Database)
	}
	if cfg.Alma.Timeout != 10*time.Second {
		t.Errorf("expected 10s alma timeout, got %v", cfg.Alma.Timeout)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target: &cfg,
		Lookuper: envconfig.MapLookuper(map[string]string{
			"PORT":         "9090",
			"JWT_SECRET":   "secret",
			"DATABASE_DSN": "postgres://other:other@db:5432/other",
			"ALMA_TIMEOUT": "3s",
		}),
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.Database.DSN != "postgres://other:other@db:5432/other" {
		t.Errorf("expected dsn override, got %q", cfg.Database.DSN)
	}
	if cfg.Alma.Timeout != 3*time.Second {
		t.Errorf("expected timeout override, got %v", cfg.Alma.Timeout)
	}
}
