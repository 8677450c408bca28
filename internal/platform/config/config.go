package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// Port is the TCP port the line-protocol bank listens on.
	Port string
	// StatusPort serves the HTTP health/status endpoint; empty disables it.
	StatusPort string
	// DataDir holds the five record store files.
	DataDir string
	// MaxClients caps concurrent logged-in sessions.
	MaxClients   int
	IsProduction bool
}

// Load reads configuration from environment variables, with an optional
// .env file for local development. Values have working defaults so the
// server starts with no configuration at all.
func Load() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STATUS_PORT", "8081")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("MAX_CLIENTS", 10)
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:         viper.GetString("PORT"),
		StatusPort:   viper.GetString("STATUS_PORT"),
		DataDir:      viper.GetString("DATA_DIR"),
		MaxClients:   viper.GetInt("MAX_CLIENTS"),
		IsProduction: viper.GetBool("IS_PRODUCTION"),
	}
	if cfg.MaxClients <= 0 {
		return nil, fmt.Errorf("MAX_CLIENTS must be positive, got %d", cfg.MaxClients)
	}
	return cfg, nil
}
