// Package config loads archivectl settings from ~/.archivectl/config.yaml and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"github.com/viewmim/archivectl/internal/logging"
	"github.com/viewmim/archivectl/internal/pagecursor"
)

// Defaults.
const (
	DefaultAPIURL            = "http://localhost:8000"
	DefaultTimeout           = 15 * time.Second
	DefaultRequestsPerSecond = 10.0
	DefaultBurst             = 5
	DefaultThreadEntries     = 256
	DefaultOutputFormat      = "table"

	configFileName = "config.yaml"
)

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete archivectl configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Pagination PaginationConfig `yaml:"pagination"`
	Cache      CacheConfig      `yaml:"cache"`
	Display    DisplayConfig    `yaml:"display"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`

	// path is the file the config was loaded from, if any.
	path string
}

// APIConfig locates and paces the archive API.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"            env:"ARCHIVECTL_API_URL"`
	Timeout           time.Duration `yaml:"timeout"             env:"ARCHIVECTL_API_TIMEOUT"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"ARCHIVECTL_API_RPS"`
	Burst             int           `yaml:"burst"               env:"ARCHIVECTL_API_BURST"`
}

// PaginationConfig sets list defaults.
type PaginationConfig struct {
	PageSize int    `yaml:"page_size" env:"ARCHIVECTL_PAGE_SIZE"`
	Sort     string `yaml:"sort"      env:"ARCHIVECTL_SORT"`
}

// CacheConfig bounds in-memory memoization.
type CacheConfig struct {
	ThreadEntries int `yaml:"thread_entries" env:"ARCHIVECTL_CACHE_ENTRIES"`
}

// DisplayConfig tunes rendering.
type DisplayConfig struct {
	// PinnedAuthors are listed first wherever authors are shown.
	PinnedAuthors []string `yaml:"pinned_authors"`
}

// OutputConfig sets the default output format for list commands.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" env:"ARCHIVECTL_OUTPUT"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"ARCHIVECTL_LOG_LEVEL"`
	Format string `yaml:"format" env:"ARCHIVECTL_LOG_FORMAT"`
	File   string `yaml:"file"   env:"ARCHIVECTL_LOG_FILE"`
}

// envOverrides mirrors the env-tagged fields so envdecode only touches what is set.
type envOverrides struct {
	API        APIConfig
	Pagination PaginationConfig
	Cache      CacheConfig
	Output     OutputConfig
	Logging    LoggingConfig
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           DefaultAPIURL,
			Timeout:           DefaultTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Pagination: PaginationConfig{
			PageSize: pagecursor.DefaultPageSize,
			Sort:     "newest",
		},
		Cache: CacheConfig{
			ThreadEntries: DefaultThreadEntries,
		},
		Display: DisplayConfig{
			PinnedAuthors: []string{"View", "Mim"},
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or the
// default location when path is empty), then environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := ShallowMergeYAML(cfg, path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else {
		cfg.path = path
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays ARCHIVECTL_* environment variables onto cfg.
func (c *Config) ApplyEnv() error {
	env := envOverrides{
		API:        c.API,
		Pagination: c.Pagination,
		Cache:      c.Cache,
		Output:     c.Output,
		Logging:    c.Logging,
	}

	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("reading environment: %w", err)
	}

	c.API = env.API
	c.Pagination = env.Pagination
	c.Cache = env.Cache
	c.Output = env.Output
	c.Logging = env.Logging
	return nil
}

// Validate checks the configuration for values no command can work with.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.API.BaseURL) == "" {
		problems = append(problems, "api.base_url is required")
	} else if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		problems = append(problems, fmt.Sprintf("api.base_url must start with http:// or https:// (got %q)", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		problems = append(problems, "api.timeout cannot be negative")
	}
	if c.API.RequestsPerSecond < 0 {
		problems = append(problems, "api.requests_per_second cannot be negative")
	}
	if c.Pagination.PageSize < 1 {
		problems = append(problems, fmt.Sprintf("pagination.page_size must be positive (got %d)", c.Pagination.PageSize))
	}
	switch c.Pagination.Sort {
	case "newest", "oldest":
	default:
		problems = append(problems, fmt.Sprintf("pagination.sort must be newest or oldest (got %q)", c.Pagination.Sort))
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		problems = append(problems, fmt.Sprintf("output.default_format must be table, json or ndjson (got %q)", c.Output.DefaultFormat))
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json (got %q)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Path returns the file the configuration was read from, or "".
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if mkErr := os.MkdirAll(filepath.Dir(path), 0o700); mkErr != nil {
		return fmt.Errorf("creating config directory: %w", mkErr)
	}
	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing config %s: %w", path, writeErr)
	}
	c.path = path
	return nil
}

// DefaultConfigPath returns the config file location under GetConfigDir.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
