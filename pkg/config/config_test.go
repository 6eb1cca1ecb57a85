package config

import (
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3000" || cfg.DBTimeZone != "UTC" || cfg.Env != EnvDevelopment || cfg.UploadsDir != "uploads" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWTExpiresIn != 24*time.Hour {
		t.Errorf("JWTExpiresIn = %v, want 24h", cfg.JWTExpiresIn)
	}
	if cfg.JWTSecret == "" {
		t.Error("development config should fall back to a default secret")
	}
}

func TestFromEnvProductionRequiresSecret(t *testing.T) {
	if _, err := FromEnv(envOf(map[string]string{"APP_ENV": "production"})); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing in production")
	}

	cfg, err := FromEnv(envOf(map[string]string{"APP_ENV": "production", "JWT_SECRET": "s3cret"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Errorf("env flags wrong for %q", cfg.Env)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad duration", map[string]string{"JWT_EXPIRES_IN": "tomorrow"}},
		{"negative duration", map[string]string{"JWT_EXPIRES_IN": "-1h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(envOf(tt.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFromEnvTrimsValues(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"PORT": "  8080 ", "JWT_EXPIRES_IN": "90m"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.JWTExpiresIn != 90*time.Minute {
		t.Errorf("JWTExpiresIn = %v", cfg.JWTExpiresIn)
	}
}
