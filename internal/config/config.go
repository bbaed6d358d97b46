package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Store kinds for the offering cache.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Catalog struct {
		BaseURL string `yaml:"base_url" env:"CATALOG_BASE_URL"`
		Timeout string `yaml:"timeout" env:"CATALOG_TIMEOUT"`
	} `yaml:"catalog"`

	Cache struct {
		Store string `yaml:"store" env:"CACHE_STORE"`
		Path  string `yaml:"path" env:"CACHE_PATH"`
	} `yaml:"cache"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Auth struct {
		Enabled         bool   `yaml:"enabled" env:"AUTH_ENABLED"`
		Secret          string `yaml:"secret" env:"AUTH_JWT_SECRET"`
		Issuer          string `yaml:"issuer" env:"AUTH_JWT_ISSUER"`
		TokenExpiration string `yaml:"token_expiration" env:"AUTH_TOKEN_EXPIRATION"`
	} `yaml:"auth"`

	Planner struct {
		HorizonTerms int   `yaml:"horizon_terms" env:"PLANNER_HORIZON_TERMS"`
		TermLoads    []int `yaml:"term_loads"`
	} `yaml:"planner"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Catalog.BaseURL = "http://www.sfu.ca/bin/wcm/course-outlines"
	config.Catalog.Timeout = "10s"

	config.Cache.Store = StoreFile
	config.Cache.Path = "data/semester_cache.json"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "degreeplan"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Auth.Issuer = "degreeplan.app"
	config.Auth.TokenExpiration = "1h"

	config.Planner.HorizonTerms = 12
	config.Planner.TermLoads = []int{3, 5}

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required")
	}
	if _, err := time.ParseDuration(config.Catalog.Timeout); err != nil {
		return fmt.Errorf("invalid catalog timeout format: %w", err)
	}

	switch config.Cache.Store {
	case StoreFile:
		if config.Cache.Path == "" {
			return fmt.Errorf("cache path is required for the file store")
		}
	case StorePostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required for the postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown cache store %q", config.Cache.Store)
	}

	if config.Auth.Enabled {
		if config.Auth.Secret == "" {
			return fmt.Errorf("JWT secret is required when auth is enabled")
		}
		if _, err := time.ParseDuration(config.Auth.TokenExpiration); err != nil {
			return fmt.Errorf("invalid token expiration format: %w", err)
		}
	}

	if config.Planner.HorizonTerms <= 0 {
		return fmt.Errorf("planner horizon must be positive")
	}
	if len(config.Planner.TermLoads) == 0 {
		return fmt.Errorf("at least one courses-per-term preset is required")
	}
	for _, load := range config.Planner.TermLoads {
		if load <= 0 {
			return fmt.Errorf("courses-per-term presets must be positive, got %d", load)
		}
	}

	return nil
}

// CatalogTimeout returns the parsed catalog request timeout.
func (c *Config) CatalogTimeout() time.Duration {
	d, err := time.ParseDuration(c.Catalog.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// TokenExpiration returns the parsed access token lifetime.
func (c *Config) TokenExpiration() time.Duration {
	d, err := time.ParseDuration(c.Auth.TokenExpiration)
	if err != nil {
		return time.Hour
	}
	return d
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
