package config

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/matheuskafuri/vizterm/internal/cache"
	"github.com/matheuskafuri/vizterm/internal/models"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// DefaultRecordsEndpoint is used when neither the config file nor the
// environment names a records endpoint.
const DefaultRecordsEndpoint = "http://localhost:8000/data"

// ErrNoBackend means the chart backend was never configured. The chart module
// has no fallback origin.
var ErrNoBackend = errors.New("chart backend URL not configured (set backend_url or VIZTERM_BACKEND_URL)")

type Records struct {
	Endpoint string `yaml:"endpoint"`
	Format   string `yaml:"format"` // "json" or "feed"
}

type Config struct {
	BackendURL     string   `yaml:"backend_url"`
	Datasets       []string `yaml:"datasets"`
	DefaultDataset string   `yaml:"default_dataset,omitempty"`
	Graph          string   `yaml:"graph"`
	CacheTTL       string   `yaml:"cache_ttl"`
	RequestTimeout string   `yaml:"request_timeout"`
	Records        Records  `yaml:"records"`
}

// envOverrides are read after the config file. Empty values leave the file's
// setting in place.
type envOverrides struct {
	BackendURL      string `env:"VIZTERM_BACKEND_URL"`
	RecordsEndpoint string `env:"VIZTERM_RECORDS_ENDPOINT"`
	RecordsFormat   string `env:"VIZTERM_RECORDS_FORMAT"`
	RequestTimeout  string `env:"VIZTERM_REQUEST_TIMEOUT"`
}

// ChartBaseURL returns the chart backend origin without a trailing slash.
func (c *Config) ChartBaseURL() (string, error) {
	u := strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	if u == "" {
		return "", ErrNoBackend
	}
	return u, nil
}

func (c *Config) RecordsEndpoint() string {
	if e := strings.TrimSpace(c.Records.Endpoint); e != "" {
		return e
	}
	return DefaultRecordsEndpoint
}

func (c *Config) RecordsFormat() string {
	if c.Records.Format == "" {
		return "json"
	}
	return strings.ToLower(c.Records.Format)
}

func (c *Config) GraphType() models.GraphType {
	g, err := models.ParseGraphType(c.Graph)
	if err != nil {
		return models.Bar
	}
	return g
}

func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return cache.DefaultTTL
	}
	return d
}

// RequestTimeoutDuration returns 0 (no timeout) for "0" or "none".
func (c *Config) RequestTimeoutDuration() time.Duration {
	switch strings.ToLower(c.RequestTimeout) {
	case "":
		return 30 * time.Second
	case "0", "none":
		return 0
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d < 0 {
		return 30 * time.Second
	}
	return d
}

// InitialDataset is the dataset selected at start-up.
func (c *Config) InitialDataset() string {
	if c.DefaultDataset != "" {
		return c.DefaultDataset
	}
	if len(c.Datasets) > 0 {
		return c.Datasets[0]
	}
	return ""
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "vizterm", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "vizterm", "vizterm.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "vizterm", "vizterm.log")
}

// ExportDir is where the TUI writes exported charts.
func ExportDir() string {
	return filepath.Join(xdg.DataHome, "vizterm", "exports")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file (writing defaults on first run), then applies
// .env and environment overrides.
func Load(path string) (*Config, error) {
	dotenv, err := readDotenv(".env")
	if err != nil {
		return nil, err
	}
	lookuper := envconfig.MultiLookuper(envconfig.OsLookuper(), envconfig.MapLookuper(dotenv))
	return LoadWith(context.Background(), path, lookuper)
}

// LoadWith is Load with an explicit environment source.
func LoadWith(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: embedded defaults are already loaded
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		// Keys absent from the file keep their default values
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(ctx, cfg, lookuper); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readDotenv(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vals, nil
}

func applyEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	var env envOverrides
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	if env.BackendURL != "" {
		cfg.BackendURL = env.BackendURL
	}
	if env.RecordsEndpoint != "" {
		cfg.Records.Endpoint = env.RecordsEndpoint
	}
	if env.RecordsFormat != "" {
		cfg.Records.Format = env.RecordsFormat
	}
	if env.RequestTimeout != "" {
		cfg.RequestTimeout = env.RequestTimeout
	}
	return nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.BackendURL != "" {
		if err := checkHTTPURL(cfg.BackendURL); err != nil {
			return fmt.Errorf("backend_url: %w", err)
		}
	}
	if cfg.Records.Endpoint != "" {
		if err := checkHTTPURL(cfg.Records.Endpoint); err != nil {
			return fmt.Errorf("records.endpoint: %w", err)
		}
	}
	if _, err := models.ParseGraphType(cfg.Graph); err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	switch cfg.RecordsFormat() {
	case "json", "feed":
	default:
		return fmt.Errorf("records.format: unknown format %q (valid: json, feed)", cfg.Records.Format)
	}
	if cfg.CacheTTL != "" {
		if _, err := time.ParseDuration(cfg.CacheTTL); err != nil {
			return fmt.Errorf("cache_ttl: %w", err)
		}
	}
	switch strings.ToLower(cfg.RequestTimeout) {
	case "", "0", "none":
	default:
		if _, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
	}
	for i, d := range cfg.Datasets {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("datasets[%d]: name is required", i)
		}
	}
	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}
