// Package config resolves bikeshare settings from defaults, an optional YAML
// file, a .env file and environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Yates-Labs/bikeshare/internal/trip"
)

// DefaultConfigFile is read from the working directory when no path is given
const DefaultConfigFile = "bikeshare.yaml"

// Environment variables recognized by Load
const (
	EnvConfig        = "BIKESHARE_CONFIG"
	EnvDataDir       = "BIKESHARE_DATA_DIR"
	EnvLogLevel      = "BIKESHARE_LOG_LEVEL"
	EnvLogFile       = "BIKESHARE_LOG_FILE"
	EnvDatasetSource = "BIKESHARE_DATASET_SOURCE"
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvOpenAIKey     = "OPENAI_API_KEY"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownCity   = errors.New("unknown city")
)

// Config holds every setting the CLI needs
type Config struct {
	// DataDir is where city files are read from and fetched into
	DataDir string `yaml:"data_dir"`

	// Cities maps a lowercase city name to its CSV file name
	Cities map[string]string `yaml:"cities"`

	TimeLayout  string `yaml:"time_layout"`
	RawPageSize int    `yaml:"raw_page_size"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// DatasetSource is the default for `bikeshare fetch`
	DatasetSource string `yaml:"dataset_source"`

	Narrative NarrativeConfig `yaml:"narrative"`

	GitHubToken  string `yaml:"-"`
	OpenAIAPIKey string `yaml:"-"`
}

// NarrativeConfig configures the optional LLM summary
type NarrativeConfig struct {
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Default returns the built-in configuration covering the three bundled cities
func Default() Config {
	return Config{
		DataDir: ".",
		Cities: map[string]string{
			"chicago":       "chicago.csv",
			"new york city": "new_york_city.csv",
			"washington":    "washington.csv",
		},
		TimeLayout:  trip.DefaultTimeLayout,
		RawPageSize: 5,
		LogLevel:    "warn",
		LogFile:     "stderr",
		Narrative: NarrativeConfig{
			Model:     "gpt-4o",
			MaxTokens: 800,
		},
	}
}

// Load builds the configuration.
// path may be empty, in which case BIKESHARE_CONFIG or DefaultConfigFile is tried.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	// Existing environment variables take priority over .env
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultConfigFile
	}

	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays values from a YAML file onto cfg
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.DataDir != "" {
		c.DataDir = file.DataDir
	}
	if len(file.Cities) > 0 {
		c.Cities = make(map[string]string, len(file.Cities))
		for name, filename := range file.Cities {
			c.Cities[normalizeCity(name)] = filename
		}
	}
	if file.TimeLayout != "" {
		c.TimeLayout = file.TimeLayout
	}
	if file.RawPageSize != 0 {
		c.RawPageSize = file.RawPageSize
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.LogFile != "" {
		c.LogFile = file.LogFile
	}
	if file.DatasetSource != "" {
		c.DatasetSource = file.DatasetSource
	}
	if file.Narrative.Model != "" {
		c.Narrative.Model = file.Narrative.Model
	}
	if file.Narrative.Temperature != 0 {
		c.Narrative.Temperature = file.Narrative.Temperature
	}
	if file.Narrative.MaxTokens != 0 {
		c.Narrative.MaxTokens = file.Narrative.MaxTokens
	}
	return nil
}

// applyEnv overrides settings from environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvDatasetSource); v != "" {
		c.DatasetSource = v
	}
	c.GitHubToken = os.Getenv(EnvGitHubToken)
	c.OpenAIAPIKey = os.Getenv(EnvOpenAIKey)
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	if len(c.Cities) == 0 {
		return fmt.Errorf("%w: no cities configured", ErrInvalidConfig)
	}
	for name, filename := range c.Cities {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty city name", ErrInvalidConfig)
		}
		if strings.TrimSpace(filename) == "" {
			return fmt.Errorf("%w: city %q has no data file", ErrInvalidConfig, name)
		}
	}
	if c.RawPageSize <= 0 {
		return fmt.Errorf("%w: raw_page_size must be positive, got %d", ErrInvalidConfig, c.RawPageSize)
	}
	if c.TimeLayout == "" {
		return fmt.Errorf("%w: time_layout is empty", ErrInvalidConfig)
	}
	return nil
}

// CityNames returns the configured city names sorted alphabetically
func (c Config) CityNames() []string {
	names := make([]string, 0, len(c.Cities))
	for name := range c.Cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CityFile returns the data file path for city
func (c Config) CityFile(city string) (string, error) {
	filename, ok := c.Cities[normalizeCity(city)]
	if !ok {
		return "", fmt.Errorf("%w: %q (choose from %s)", ErrUnknownCity, city, strings.Join(c.CityNames(), ", "))
	}
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	return filepath.Join(c.DataDir, filename), nil
}

// HasCity reports whether city is configured
func (c Config) HasCity(city string) bool {
	_, ok := c.Cities[normalizeCity(city)]
	return ok
}

func normalizeCity(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
