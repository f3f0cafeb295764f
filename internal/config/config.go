package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the listmatch API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Source  SourceConfig  `yaml:"source"`
	Cache   CacheConfig   `yaml:"cache"`
	Engine  EngineConfig  `yaml:"engine"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SourceConfig holds listing source settings.
type SourceConfig struct {
	Driver   string         `yaml:"driver"` // ishare, postgres (default: ishare)
	IShare   IShareConfig   `yaml:"ishare"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// IShareConfig holds settings for the iShare listings backend.
type IShareConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// PostgresConfig holds settings for a direct Postgres listing source.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// CacheConfig holds listing cache settings. An empty addrs list disables
// the cache and every search hits the source directly.
type CacheConfig struct {
	Addrs     []string `yaml:"addrs"`
	Password  string   `yaml:"password"`
	TTLSec    int      `yaml:"ttl_sec"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// EngineConfig holds the search engine policy. Relaxation orders list
// criteria fields least important first; empty lists fall back to the
// built-in defaults.
type EngineConfig struct {
	AvailableStatus  string   `yaml:"available_status"`
	BaseScore        *float64 `yaml:"base_score"`
	FieldWeight      *float64 `yaml:"field_weight"`
	PriceBonusWeight *float64 `yaml:"price_bonus_weight"`
	BudgetFraction   *float64 `yaml:"budget_fraction"`
	CheapestMargin   *float64 `yaml:"cheapest_margin"`

	RelaxationOrder map[string][]string `yaml:"relaxation_order"` // keyed by domain
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Source.Driver == "" {
		c.Source.Driver = "ishare"
	}
	if c.Source.IShare.BaseURL == "" {
		c.Source.IShare.BaseURL = "http://localhost:3000"
	}
	if c.Source.IShare.TimeoutSec <= 0 {
		c.Source.IShare.TimeoutSec = 10
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 60
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "listmatch:"
	}
	if c.Engine.AvailableStatus == "" {
		c.Engine.AvailableStatus = "ACTIVE"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Source.Driver {
	case "ishare":
		if c.Source.IShare.BaseURL == "" {
			return fmt.Errorf("source.ishare.base_url is required")
		}
	case "postgres":
		if c.Source.Postgres.DSN == "" {
			return fmt.Errorf("source.postgres.dsn is required")
		}
	default:
		return fmt.Errorf("source.driver must be \"ishare\" or \"postgres\", got %q", c.Source.Driver)
	}
	for _, v := range []*float64{
		c.Engine.BaseScore, c.Engine.FieldWeight, c.Engine.PriceBonusWeight,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("engine score weights must not be negative")
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
