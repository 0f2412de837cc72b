package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the Memoro backend.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values. Secrets (database
// password, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"development"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Redis configuration (optional search cache)
	Redis RedisConfig `yaml:"redis"`

	// Extraction LLM configuration
	Extraction ExtractionConfig `yaml:"extraction"`

	// Search configuration
	Search SearchConfig `yaml:"search"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"memoro"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"memoro"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// URL returns a PostgreSQL connection URL for this configuration.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Database,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig holds Redis configuration. Redis is optional: when Host is
// empty the search cache is disabled and everything hits PostgreSQL.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// ExtractionConfig holds configuration for the LLM extraction collaborator.
type ExtractionConfig struct {
	// Provider selects the LLM backend: "openai" or "anthropic".
	Provider string `yaml:"provider" env:"EXTRACTION_PROVIDER" env-default:"openai"`
	Model    string `yaml:"model" env:"EXTRACTION_MODEL" env-default:"gpt-4o"`
	// BaseURL overrides the provider's default endpoint (OpenAI-compatible
	// gateways, local models). Empty uses the provider default.
	BaseURL string `yaml:"base_url" env:"EXTRACTION_BASE_URL" env-default:""`
	APIKey  string `yaml:"-" env:"EXTRACTION_API_KEY"` // Secret - not in YAML
	// MaxRetries bounds retry attempts for retryable extraction failures.
	MaxRetries int `yaml:"max_retries" env:"EXTRACTION_MAX_RETRIES" env-default:"2"`
}

// SearchConfig holds search boundary limits.
type SearchConfig struct {
	DefaultLimit    int `yaml:"default_limit" env:"SEARCH_DEFAULT_LIMIT" env-default:"20"`
	MaxLimit        int `yaml:"max_limit" env:"SEARCH_MAX_LIMIT" env-default:"100"`
	MaxQueryLength  int `yaml:"max_query_length" env:"SEARCH_MAX_QUERY_LENGTH" env-default:"500"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" env:"SEARCH_CACHE_TTL_SECONDS" env-default:"60"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml does not exist, configuration comes from the
// environment alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Extraction.Provider != "openai" && c.Extraction.Provider != "anthropic" {
		return fmt.Errorf("unsupported extraction provider %q", c.Extraction.Provider)
	}
	if c.Search.DefaultLimit < 1 || c.Search.DefaultLimit > c.Search.MaxLimit {
		return errors.New("search default_limit must be between 1 and max_limit")
	}
	return nil
}
