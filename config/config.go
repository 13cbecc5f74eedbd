package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisURL      string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Object storage
	S3Bucket string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets for credentials when the env var is unset.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:    envOr("SERVER_PORT", "3001"),
		ServerHost:    envOr("SERVER_HOST", "0.0.0.0"),
		DBHost:        envOr("DB_HOST", "localhost"),
		DBPort:        envOr("DB_PORT", "5432"),
		DBUser:        envOrSecret("DB_USER", "db_user"),
		DBPassword:    envOrSecret("DB_PASSWORD", "db_password"),
		DBName:        envOr("DB_NAME", "expiretrack"),
		DBSSLMode:     envOr("DB_SSL_MODE", "disable"),
		RedisHost:     envOr("REDIS_HOST", "localhost"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisPassword: envOrSecret("REDIS_PASSWORD", "redis_password"),
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     envOrSecret("JWT_SECRET", "jwt_secret"),
		S3Bucket:      envOr("S3_BUCKET_NAME", "expiretrack-product-images"),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DBUser == "" || cfg.DBName == "" {
		return fmt.Errorf("database user and name are required")
	}
	if IsProduction() && cfg.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrSecret reads an env var, then the matching Docker secret file.
func envOrSecret(key, secretName string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, secretName)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
