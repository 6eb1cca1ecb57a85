package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ServiceName    = "supermarket-inventory"
	ServiceVersion = "1.0.0"

	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultJWTSecret = "your-super-secret-key-change-in-production"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Env  string
	Port string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBTimeZone  string

	JWTSecret    string
	JWTExpiresIn time.Duration

	CORSOrigins  string
	OtelEndpoint string
	UploadsDir   string

	SeedAdminPassword string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Env:               get("APP_ENV", EnvDevelopment),
		Port:              get("PORT", "3000"),
		DatabaseURL:       get("DATABASE_URL", ""),
		DBHost:            get("DB_HOST", "127.0.0.1"),
		DBPort:            get("DB_PORT", "5432"),
		DBUser:            get("DB_USER", "postgres"),
		DBPassword:        get("DB_PASSWORD", ""),
		DBName:            get("DB_NAME", "supermarket"),
		DBTimeZone:        get("DB_TIMEZONE", "UTC"),
		JWTSecret:         get("JWT_SECRET", ""),
		CORSOrigins:       get("CORS_ORIGINS", "http://localhost:4200"),
		OtelEndpoint:      get("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		UploadsDir:        get("UPLOADS_DIR", "uploads"),
		SeedAdminPassword: get("SEED_ADMIN_PASSWORD", "admin123"),
	}

	ttl, err := time.ParseDuration(get("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	if ttl <= 0 {
		return nil, errors.New("JWT_EXPIRES_IN must be positive")
	}
	cfg.JWTExpiresIn = ttl

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET environment variable is required in production")
		}
		cfg.JWTSecret = defaultJWTSecret
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }
