package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	// A local .env may carry the access token; missing is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Environment overrides, e.g. REELFEED_TMDB_ACCESS_TOKEN
	v.SetEnvPrefix("reelfeed")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".reelfeed"))
		}

		// Check /etc
		v.AddConfigPath("/etc/reelfeed/")
	}

	// Read config file; without one the defaults and environment apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults. The empty token default registers the key so the
	// environment override is picked up during Unmarshal.
	v.SetDefault("tmdb.url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.access_token", "")
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.timeout_seconds", 30)

	// Browse defaults
	v.SetDefault("browse.prefetch_distance", 5)
	v.SetDefault("browse.max_pages", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.URL == "" {
		return fmt.Errorf("tmdb.url is required")
	}

	if cfg.TMDB.AccessToken == "" || cfg.TMDB.AccessToken == "your-access-token-here" {
		return fmt.Errorf("tmdb.access_token must be set to a valid access token")
	}

	if cfg.TMDB.TimeoutSecs <= 0 {
		return fmt.Errorf("tmdb.timeout_seconds must be positive")
	}

	if cfg.Browse.PrefetchDistance <= 0 {
		return fmt.Errorf("browse.prefetch_distance must be positive")
	}

	if cfg.Browse.MaxPages < 0 {
		return fmt.Errorf("browse.max_pages must not be negative")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
