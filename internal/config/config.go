package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Feed    FeedConfig    `mapstructure:"feed"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FeedConfig holds feed source configuration
type FeedConfig struct {
	BaseURL      string `mapstructure:"base_url"`      // Override for the HN API endpoint
	PageSize     int    `mapstructure:"page_size"`     // Stories fetched per page
	PollInterval int    `mapstructure:"poll_interval"` // Seconds between new-story checks (0 disables)
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// CacheConfig holds story cache configuration
type CacheConfig struct {
	Dir      string `mapstructure:"dir"`      // "" = default path, "off" = memory-only
	Disabled bool   `mapstructure:"disabled"` // Skip persistence entirely
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Feed: FeedConfig{
			BaseURL:      "",
			PageSize:     30,
			PollInterval: 120,
		},
		UI: UIConfig{
			Theme: "default",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "feedline", "feedline.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "feedline", "feedline.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "feedline")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "feedline")
	}
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "feedline", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "feedline", "cache")
	}
}

// Path returns the config file location for the current OS
func Path() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("FEEDLINE")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("feed.base_url", cfg.Feed.BaseURL)
	viper.Set("feed.page_size", cfg.Feed.PageSize)
	viper.Set("feed.poll_interval", cfg.Feed.PollInterval)
	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("cache.dir", cfg.Cache.Dir)
	viper.Set("cache.disabled", cfg.Cache.Disabled)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	if err := viper.WriteConfigAs(Path()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CacheDir resolves the effective cache directory ("" = memory-only)
func (c *Config) CacheDir() string {
	if c.Cache.Disabled {
		return ""
	}
	if c.Cache.Dir == "" {
		return defaultCachePath()
	}
	return c.Cache.Dir
}
