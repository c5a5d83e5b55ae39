// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Paths
	RecordsDir string `json:"records_dir,omitempty"` // Directory holding job and candidate records
	CachePath  string `json:"cache_path,omitempty"`  // SQLite comparison cache location

	// Backends
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for the shared cache store

	// Reasoning
	MaxRetries         int `json:"max_retries,omitempty" validate:"omitempty,min=1,max=10"`
	BaseTimeoutSeconds int `json:"base_timeout_seconds,omitempty" validate:"omitempty,min=1,max=120"`

	// Cache
	CacheTTLDays         int `json:"cache_ttl_days,omitempty" validate:"omitempty,min=1"`
	CachePersistInterval int `json:"cache_persist_interval,omitempty" validate:"omitempty,min=1"`

	// Matching
	BucketWeightFloor   float64 `json:"bucket_weight_floor,omitempty" validate:"omitempty,gt=0,lt=1"`
	MaxConcurrentCalls  int     `json:"max_concurrent_calls,omitempty" validate:"omitempty,min=1,max=64"`
	BucketParallelism   int     `json:"bucket_parallelism,omitempty" validate:"omitempty,min=1,max=16"`
	ConfidenceThreshold float64 `json:"confidence_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`

	// Behavior
	ForceReprocess bool `json:"force_reprocess,omitempty"` // Rematch jobs that already carry results
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills credentials from the environment when the config file left
// them empty. GEMINI_API_KEY and DATABASE_URL are the conventional names.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.RecordsDir != "" {
		if _, err := os.Stat(c.RecordsDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: records directory not found: %s", c.RecordsDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.RecordsDir == "" {
		result.RecordsDir = defaults.RecordsDir
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.BaseTimeoutSeconds == 0 {
		result.BaseTimeoutSeconds = defaults.BaseTimeoutSeconds
	}
	if result.CacheTTLDays == 0 {
		result.CacheTTLDays = defaults.CacheTTLDays
	}
	if result.CachePersistInterval == 0 {
		result.CachePersistInterval = defaults.CachePersistInterval
	}
	if result.MaxConcurrentCalls == 0 {
		result.MaxConcurrentCalls = defaults.MaxConcurrentCalls
	}
	if result.BucketParallelism == 0 {
		result.BucketParallelism = defaults.BucketParallelism
	}

	// Float fields
	if result.BucketWeightFloor == 0 {
		result.BucketWeightFloor = defaults.BucketWeightFloor
	}
	if result.ConfidenceThreshold == 0 {
		result.ConfidenceThreshold = defaults.ConfidenceThreshold
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in configuration used when neither the config
// file nor flags set a value.
func Defaults() Config {
	return Config{
		CachePath:            filepath.Join(".", "data", "comparison_cache.db"),
		MaxRetries:           3,
		BaseTimeoutSeconds:   30,
		CacheTTLDays:         30,
		CachePersistInterval: 10,
		BucketWeightFloor:    0.1,
		MaxConcurrentCalls:   4,
		BucketParallelism:    2,
		ConfidenceThreshold:  0.6,
	}
}
