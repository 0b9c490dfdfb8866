package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultProductLimit bounds how many products participate in the
// sparse relation tables.
const DefaultProductLimit = 10

type Config struct {
	Database Database `json:"database" mapstructure:"database"`
	Seed     Seed     `json:"seed" mapstructure:"seed"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

type Seed struct {
	// Source optionally points at a YAML file overriding the embedded
	// seed lists.
	Source       string `json:"source,omitempty" mapstructure:"source"`
	ProductLimit int    `json:"product_limit,omitempty" mapstructure:"product_limit"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Seed.ProductLimit <= 0 {
		cfg.Seed.ProductLimit = DefaultProductLimit
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}
