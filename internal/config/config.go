// Package config materializes the tool's configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"stockctl/internal/search"
)

// Config represents the full configuration surface.
type Config struct {
	Files  FilesConfig
	Report ReportConfig
	Drive  DriveConfig
}

// FilesConfig holds the paths of the three data files.
type FilesConfig struct {
	Stock     string
	Orders    string
	Additions string
}

// ReportConfig holds search/report settings.
type ReportConfig struct {
	LowStockLimit int
}

// DriveConfig holds the Google Drive sync settings.
type DriveConfig struct {
	CredentialsPath string
}

// Load reads environment variables (optionally from the provided file)
// and materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are
		// acceptable when configuration comes from the environment
		// directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Files: FilesConfig{
			Stock:     getenvWithDefault("STOCKCTL_STOCK_FILE", "stock.csv"),
			Orders:    getenvWithDefault("STOCKCTL_ORDERS_FILE", "orders.csv"),
			Additions: getenvWithDefault("STOCKCTL_ADDITIONS_FILE", "additions.csv"),
		},
		Report: ReportConfig{
			LowStockLimit: search.DefaultLowStockLimit,
		},
		Drive: DriveConfig{
			CredentialsPath: getenvWithDefault("STOCKCTL_DRIVE_CREDENTIALS", "client_secret.json"),
		},
	}

	if raw := os.Getenv("STOCKCTL_LOW_STOCK_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("STOCKCTL_LOW_STOCK_LIMIT must be a positive integer, got %q", raw)
		}
		cfg.Report.LowStockLimit = limit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch {
	case c.Files.Stock == "":
		return errors.New("STOCKCTL_STOCK_FILE must not be empty")
	case c.Files.Orders == "":
		return errors.New("STOCKCTL_ORDERS_FILE must not be empty")
	case c.Files.Additions == "":
		return errors.New("STOCKCTL_ADDITIONS_FILE must not be empty")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
