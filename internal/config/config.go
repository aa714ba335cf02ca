package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/username/shift-roster/internal/roster"
)

// Config represents application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Roster  RosterConfig  `mapstructure:"roster"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig locates the flat files holding application state
type StorageConfig struct {
	DataFile     string `mapstructure:"data_file"`
	PasswordFile string `mapstructure:"password_file"`
}

// RosterConfig controls roster generation and display
type RosterConfig struct {
	DefaultShift string `mapstructure:"default_shift"`
	Timezone     string `mapstructure:"timezone"`
}

// AuthConfig controls admin credential handling
type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// LogConfig controls logging behavior
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. The tool runs with defaults when
// no config file is present.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.data_file", "roster_data.json")
	v.SetDefault("storage.password_file", "admin_secret.key")
	v.SetDefault("roster.default_shift", "General")
	v.SetDefault("roster.timezone", "Local")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.shift-roster")
		v.AddConfigPath("/etc/shift-roster")
	}

	// Read environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Storage.DataFile == "" {
		return fmt.Errorf("storage.data_file is required")
	}
	if c.Storage.PasswordFile == "" {
		return fmt.Errorf("storage.password_file is required")
	}

	// Off and Holiday are overlay values and cannot be the default.
	if shift, err := roster.ParseShift(c.Roster.DefaultShift); err != nil || !shift.Assignable() {
		return fmt.Errorf("roster.default_shift must be an assignable shift, got %q", c.Roster.DefaultShift)
	}

	if _, err := time.LoadLocation(c.Roster.Timezone); err != nil {
		return fmt.Errorf("roster.timezone is not a recognized location: %q", c.Roster.Timezone)
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31")
	}

	return nil
}

// Location resolves roster.timezone to a time.Location. Validate has
// already checked the name; an unresolvable one falls back to Local.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Roster.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
