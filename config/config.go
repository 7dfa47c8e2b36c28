package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from file. Credentials may also come
// from the environment (TDA_CLIENT_ID, TDA_REFRESH_TOKEN), optionally
// seeded from a local .env file; a config file is not required when
// both are set that way.
func Load(configPath string) (*Config, error) {
	// Best effort .env overlay; a missing file is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Environment overrides for the credentials
	v.BindEnv("tda.client_id", "TDA_CLIENT_ID")
	v.BindEnv("tda.refresh_token", "TDA_REFRESH_TOKEN")
	v.BindEnv("tda.account_id", "TDA_ACCOUNT_ID")

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
			v.AddConfigPath(filepath.Join(home, ".tdactl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/tdactl/")
	}

	// Read config file; without one the defaults plus environment
	// still have to carry the credentials.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %w", err)
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
	// Token store defaults
	v.SetDefault("token_store.backend", "file")
	v.SetDefault("token_store.path", defaultTokenPath())
	v.SetDefault("token_store.redis_key", "tdactl:access_token")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

func defaultTokenPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".tdactl", "token.json")
	}
	return ".token.json"
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TDA.ClientID == "" {
		return fmt.Errorf("tda.client_id is required (or set TDA_CLIENT_ID)")
	}

	if cfg.TDA.RefreshToken == "" {
		return fmt.Errorf("tda.refresh_token is required (or set TDA_REFRESH_TOKEN)")
	}

	switch cfg.TokenStore.Backend {
	case "file":
		if cfg.TokenStore.Path == "" {
			return fmt.Errorf("token_store.path is required for the file backend")
		}
	case "redis":
		if cfg.TokenStore.RedisURL == "" {
			return fmt.Errorf("token_store.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid token_store.backend: %s (must be 'file' or 'redis')", cfg.TokenStore.Backend)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
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
