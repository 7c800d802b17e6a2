package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/dates"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	API         APIConfig     `toml:"api"`
	Desk        DeskConfig    `toml:"desk"`
	Panels      PanelsConfig  `toml:"panels"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// APIConfig points at the IBOR backend.
type APIConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses the request timeout, falling back to 10s.
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// PortfolioRow is one entry in the portfolio grid.
type PortfolioRow struct {
	Code      string  `toml:"code" json:"code"`
	Name      string  `toml:"name" json:"name"`
	Benchmark string  `toml:"benchmark" json:"benchmark"`
	MV        float64 `toml:"mv" json:"mv"`
	TWRR      float64 `toml:"twrr" json:"twrr"`
}

// DeskConfig holds the initial selection and the grid contents.
type DeskConfig struct {
	Portfolios       []PortfolioRow `toml:"portfolios"`
	DefaultPortfolio string         `toml:"default_portfolio"`
	DefaultBenchmark string         `toml:"default_benchmark"`
	StartDate        string         `toml:"start_date"`
	EndDate          string         `toml:"end_date"`
}

// DefaultRange parses the configured start/end dates.
func (c *DeskConfig) DefaultRange() (dates.Range, error) {
	return dates.NewRange(c.StartDate, c.EndDate)
}

// PanelsConfig tunes the reactive panel controllers.
type PanelsConfig struct {
	Debounce string `toml:"debounce"`
}

// GetDebounce parses the debounce window. Unparseable or negative values fall back to 120ms.
func (c *PanelsConfig) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil || d < 0 {
		return 120 * time.Millisecond
	}
	return d
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// IsDevMode reports whether the portal runs with environment = "dev".
func (c *Config) IsDevMode() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "dev")
}

// BaseURL returns the portal's own URL.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}

// Validate returns a list of problems with mandatory settings. Empty means valid.
func (c *Config) Validate() []string {
	var issues []string

	if strings.TrimSpace(c.API.URL) == "" {
		issues = append(issues, "api.url is required (IBOR_API_URL)")
	} else if !strings.HasPrefix(c.API.URL, "http://") && !strings.HasPrefix(c.API.URL, "https://") {
		issues = append(issues, fmt.Sprintf("api.url must start with http:// or https:// (got %q)", c.API.URL))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}

	if strings.TrimSpace(c.Desk.DefaultBenchmark) == "" {
		issues = append(issues, "desk.default_benchmark is required")
	}

	if _, err := c.Desk.DefaultRange(); err != nil {
		issues = append(issues, fmt.Sprintf("desk.start_date/end_date invalid: %v", err))
	}

	seen := make(map[string]bool, len(c.Desk.Portfolios))
	for i, row := range c.Desk.Portfolios {
		if strings.TrimSpace(row.Code) == "" {
			issues = append(issues, fmt.Sprintf("desk.portfolios[%d].code is required", i))
			continue
		}
		if seen[row.Code] {
			issues = append(issues, fmt.Sprintf("desk.portfolios has duplicate code %q", row.Code))
		}
		seen[row.Code] = true
	}

	return issues
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Slice defaults are restored after decoding so files replace them rather
	// than merge into them.
	defaultRows := config.Desk.Portfolios
	defaultOutputs := config.Logging.Outputs
	config.Desk.Portfolios = nil
	config.Logging.Outputs = nil

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if len(config.Desk.Portfolios) == 0 {
		config.Desk.Portfolios = defaultRows
	}
	if len(config.Logging.Outputs) == 0 {
		config.Logging.Outputs = defaultOutputs
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies IBOR_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("IBOR_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("IBOR_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("IBOR_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if apiURL := os.Getenv("IBOR_API_URL"); apiURL != "" {
		config.API.URL = strings.TrimRight(apiURL, "/")
	}
	if timeout := os.Getenv("IBOR_API_TIMEOUT"); timeout != "" {
		config.API.Timeout = timeout
	}
	if pf := os.Getenv("IBOR_DEFAULT_PORTFOLIO"); pf != "" {
		config.Desk.DefaultPortfolio = pf
	}
	if bm := os.Getenv("IBOR_DEFAULT_BENCHMARK"); bm != "" {
		config.Desk.DefaultBenchmark = bm
	}
	if debounce := os.Getenv("IBOR_PANELS_DEBOUNCE"); debounce != "" {
		config.Panels.Debounce = debounce
	}
	if badgerPath := os.Getenv("IBOR_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("IBOR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("IBOR_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
