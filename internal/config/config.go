// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultRefreshInterval is the dashboard refresh period.
const DefaultRefreshInterval = 300000 * time.Millisecond

// Config holds application configuration
type Config struct {
	APIURL          string
	LogLevel        string
	LogFile         string        // TUI log destination; the terminal belongs to the UI
	RefreshInterval time.Duration // Dashboard refresh period
	Currency        string        // ISO 4217 display currency
	DateLayout      string        // Go layout for displayed dates
	PageSize        int           // Transactions table rows per page
	HTTPTimeout     time.Duration // 0 keeps the transport default
	SettingsFile    string        // YAML file persisting TUI settings
}

// Load reads configuration from environment variables, a .env file if one
// exists, and finally the settings file.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:          getEnv("TRADEBOOK_API_URL", "http://localhost:5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("TRADEBOOK_LOG_FILE", defaultPath("tradebook.log")),
		RefreshInterval: getEnvAsDuration("TRADEBOOK_REFRESH_INTERVAL", DefaultRefreshInterval),
		Currency:        getEnv("TRADEBOOK_CURRENCY", "INR"),
		DateLayout:      getEnv("TRADEBOOK_DATE_FORMAT", "02/01/2006"),
		PageSize:        getEnvAsInt("TRADEBOOK_PAGE_SIZE", 25),
		HTTPTimeout:     getEnvAsDuration("TRADEBOOK_HTTP_TIMEOUT", 0),
		SettingsFile:    getEnv("TRADEBOOK_SETTINGS_FILE", defaultPath("settings.yaml")),
	}

	if err := cfg.UpdateFromSettings(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UpdateFromSettings applies values persisted in the settings file.
// Settings file values take precedence over environment variables.
func (c *Config) UpdateFromSettings() error {
	s, err := LoadSettings(c.SettingsFile)
	if err != nil {
		return err
	}
	if s.APIURL != "" {
		c.APIURL = s.APIURL
	}
	return nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if err := ValidateAPIURL(c.APIURL); err != nil {
		return err
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	return nil
}

// ValidateAPIURL checks that u is an absolute http(s) URL.
func ValidateAPIURL(u string) error {
	if u == "" {
		return fmt.Errorf("API URL cannot be empty")
	}
	parsed, err := url.ParseRequestURI(u)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid API URL %q", u)
	}
	return nil
}

// defaultPath places name in the user config dir, falling back to the
// working directory when there is none.
func defaultPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "tradebook", name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
