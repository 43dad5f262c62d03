package config

import (
	"strings"
	"testing"
)

func productionConfig() *Config {
	return &Config{
		Environment:              EnvProduction,
		LogLevel:                 "info",
		CORSAllowedOrigins:       "https://stock.example.com",
		SentryDSN:                "https://key@sentry.example.com/1",
		LowStockThreshold:        5,
		ProductLowStockThreshold: 10,
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid production config", func(*Config) {}, ""},
		{"non-production skips checks", func(c *Config) {
			c.Environment = EnvDevelopment
			c.LogLevel = "debug"
			c.CORSAllowedOrigins = "*"
		}, ""},
		{"debug log level", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
		{"wildcard CORS", func(c *Config) { c.CORSAllowedOrigins = " * " }, "CORS_ALLOWED_ORIGINS"},
		{"missing sentry", func(c *Config) { c.SentryDSN = "" }, "SENTRY_DSN"},
		{"sample ratio above one", func(c *Config) { c.OtelSampleRatio = 1.5 }, "OTEL_SAMPLE_RATIO"},
		{"negative threshold", func(c *Config) { c.LowStockThreshold = -1 }, "thresholds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := productionConfig()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateForProduction_CollectsAllErrors(t *testing.T) {
	cfg := productionConfig()
	cfg.LogLevel = "debug"
	cfg.SentryDSN = ""

	err := ValidateForProduction(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") || !strings.Contains(err.Error(), "SENTRY_DSN") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}

func TestIsProduction(t *testing.T) {
	if !(&Config{Environment: EnvProduction}).IsProduction() {
		t.Fatal("expected production")
	}
	if (&Config{Environment: EnvTesting}).IsProduction() {
		t.Fatal("testing must not be production")
	}
}
