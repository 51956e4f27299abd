// Package config handles configuration loading for equitypages.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	HTTP     HTTPConfig     `mapstructure:"http"     yaml:"http"`
	Output   OutputConfig   `mapstructure:"output"   yaml:"output"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// PipelineConfig holds batch orchestration settings.
type PipelineConfig struct {
	Workers       int    `mapstructure:"workers"         yaml:"workers"`         // parallel symbol fetches
	PriceRange    string `mapstructure:"price_range"     yaml:"price_range"`     // chart API range, e.g. "10y"
	ScatterPeriod string `mapstructure:"scatter_period"  yaml:"scatter_period"`  // lookback shown on the scatter
	Benchmark     string `mapstructure:"benchmark"       yaml:"benchmark"`       // index symbol, e.g. "^GSPC"
	Limit         int    `mapstructure:"limit"           yaml:"limit"`           // cap on constituents, 0 = all
}

// HTTPConfig holds outbound HTTP client settings.
type HTTPConfig struct {
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	Retries    int    `mapstructure:"retries"     yaml:"retries"`    // attempts per request
	UserAgent  string `mapstructure:"user_agent"  yaml:"user_agent"` // empty = built-in browser UA
}

// OutputConfig holds artifact destinations.
type OutputConfig struct {
	ReportsDir string `mapstructure:"reports_dir" yaml:"reports_dir"`
	StocksJSON string `mapstructure:"stocks_json" yaml:"stocks_json"`
	HTML       bool   `mapstructure:"html"        yaml:"html"` // also render HTML pages
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.equitypages/config.yaml (home directory)
//  3. /etc/equitypages/config.yaml (system)
//
// Environment variables override config file values.
// Format: EQUITYPAGES_<SECTION>_<KEY>, e.g., EQUITYPAGES_PIPELINE_WORKERS
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".equitypages"))
	v.AddConfigPath("/etc/equitypages")

	v.SetEnvPrefix("EQUITYPAGES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Default returns a configuration populated with the built-in
// defaults only, without touching files or the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; a decode failure here is a programming error.
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return &cfg
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("EQUITYPAGES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Pipeline defaults. One worker mirrors the upstream rate limits;
	// raise with care.
	v.SetDefault("pipeline.workers", 1)
	v.SetDefault("pipeline.price_range", "10y")
	v.SetDefault("pipeline.scatter_period", "1y")
	v.SetDefault("pipeline.benchmark", "^GSPC")
	v.SetDefault("pipeline.limit", 0)

	// HTTP defaults
	v.SetDefault("http.timeout_sec", 30)
	v.SetDefault("http.retries", 4)
	v.SetDefault("http.user_agent", "")

	// Output defaults
	v.SetDefault("output.reports_dir", "./public/reports")
	v.SetDefault("output.stocks_json", "./public/data/stocks.json")
	v.SetDefault("output.html", true)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:4321"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
