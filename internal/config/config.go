// ABOUTME: Environment-driven configuration for the cyrlab-admin client
// ABOUTME: Loads .env files and CYRLAB_* variables with sane defaults

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all client-side settings.
type Config struct {
	APIURL         string        `env:"CYRLAB_API_URL,         default=http://localhost:5115"`
	PageSize       int           `env:"CYRLAB_PAGE_SIZE,       default=10"`
	SearchDebounce time.Duration `env:"CYRLAB_SEARCH_DEBOUNCE, default=300ms"`
	HTTPTimeout    time.Duration `env:"CYRLAB_HTTP_TIMEOUT,    default=30s"`
	LogLevel       string        `env:"CYRLAB_LOG_LEVEL,       default=info"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("CYRLAB_PAGE_SIZE must be at least 1, got %d", cfg.PageSize)
	}
	if cfg.SearchDebounce < 0 {
		return nil, fmt.Errorf("CYRLAB_SEARCH_DEBOUNCE must not be negative")
	}

	return &cfg, nil
}

// ConfigDir returns the directory for persisted client state (token, logs)
// following the XDG convention.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cyrlab-admin")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cyrlab-admin")
}
