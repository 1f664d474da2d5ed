package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Remote RemoteConfig
	Local  LocalConfig
	Sync   SyncConfig
	Auth   AuthConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// RemoteConfig contains credentials and addressing for the remote snapshot
// store. An empty BaseURL disables remote sync entirely.
type RemoteConfig struct {
	BaseURL string
	Key     string
	Token   string
}

// LocalConfig points at the local snapshot file.
type LocalConfig struct {
	SnapshotPath string
}

// SyncConfig holds the remote push debounce.
type SyncConfig struct {
	PushDebounce time.Duration
}

// AuthConfig carries the static role secrets and the session token key.
type AuthConfig struct {
	AdminSecret   string
	ProductSecret string
	JWTSecret     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance. System environment variables win over the
// file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Remote: RemoteConfig{
			BaseURL: os.Getenv("REMOTE_BASE_URL"),
			Key:     getEnv("REMOTE_STORE_KEY", "inventory"),
			Token:   os.Getenv("REMOTE_TOKEN"),
		},
		Local: LocalConfig{
			SnapshotPath: getEnv("SNAPSHOT_PATH", "data/snapshot.json"),
		},
		Auth: AuthConfig{
			AdminSecret:   os.Getenv("ADMIN_SECRET"),
			ProductSecret: os.Getenv("PRODUCT_SECRET"),
			JWTSecret:     os.Getenv("JWT_SECRET"),
		},
	}

	debounce, err := time.ParseDuration(getEnv("PUSH_DEBOUNCE", "2s"))
	if err != nil {
		return nil, fmt.Errorf("parse PUSH_DEBOUNCE: %w", err)
	}
	cfg.Sync.PushDebounce = debounce

	if cfg.Auth.AdminSecret == "" || cfg.Auth.ProductSecret == "" {
		return nil, errors.New("ADMIN_SECRET and PRODUCT_SECRET must be set")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
