package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Theme name constants for the display preference.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ServerConfig holds settings for the remote goal API.
type ServerConfig struct {
	// BaseURL is the root URL of the goal tracker API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// QuoteURL is the optional quote-of-the-day endpoint. Empty
	// disables the fetch entirely.
	QuoteURL string `mapstructure:"quote_url" yaml:"quote_url"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// ReminderConfig holds settings for due-date reminders.
type ReminderConfig struct {
	// NotificationsEnabled gates whether armed reminders actually
	// surface a notification when they fire.
	NotificationsEnabled bool `mapstructure:"notifications_enabled" yaml:"notifications_enabled"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server    ServerConfig   `mapstructure:"server" yaml:"server"`
	Display   DisplayConfig  `mapstructure:"display" yaml:"display"`
	Reminders ReminderConfig `mapstructure:"reminders" yaml:"reminders"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/goaltrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "goaltrack", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:5000",
		},
		Display: DisplayConfig{
			Theme: ThemeDark,
		},
		Reminders: ReminderConfig{
			NotificationsEnabled: true,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration. The
// GOALTRACK_SERVER environment variable overrides the configured base URL.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.base_url", "http://127.0.0.1:5000")
	v.SetDefault("display.theme", ThemeDark)
	v.SetDefault("reminders.notifications_enabled", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnvOverrides(defaultAppConfig()), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnvOverrides(defaultAppConfig()), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.Theme != ThemeLight {
		cfg.Display.Theme = ThemeDark
	}

	return applyEnvOverrides(cfg), nil
}

// applyEnvOverrides applies environment variable overrides to cfg.
func applyEnvOverrides(cfg *AppConfig) *AppConfig {
	if url := os.Getenv("GOALTRACK_SERVER"); url != "" {
		cfg.Server.BaseURL = url
	}
	return cfg
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("display", cfg.Display)
	v.Set("reminders", cfg.Reminders)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
