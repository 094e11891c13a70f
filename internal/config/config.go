package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/smaquant/smaquant/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backtest  BacktestConfig  `mapstructure:"backtest"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	APIKey      string `mapstructure:"api_key"`
	MaxJobs     int    `mapstructure:"max_jobs"`
	JobTTLHours int    `mapstructure:"job_ttl_hours"`
}

// BacktestConfig holds the default strategy parameters.
type BacktestConfig struct {
	ShortWindow int `mapstructure:"short_window"`
	LongWindow  int `mapstructure:"long_window"`
}

// ProviderConfig selects and configures the price-series provider.
type ProviderConfig struct {
	Name    string `mapstructure:"name"` // "yahoo" or "csv"
	CSVPath string `mapstructure:"csv_path"`
}

// ArchiveConfig holds result-archive settings.
type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

// S3Config holds S3-compatible backend settings.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// NarrativeConfig selects the summary generator. "rule" needs no
// credentials; "claude" and "openai" call the respective APIs.
type NarrativeConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
}

// ClaudeConfig holds Anthropic API settings.
type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults: the classic 20/50
// crossover, the Yahoo provider, and a local archive.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			MaxJobs:     100,
			JobTTLHours: 1,
		},
		Backtest: BacktestConfig{
			ShortWindow: 20,
			LongWindow:  50,
		},
		Provider: ProviderConfig{
			Name: "yahoo",
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Type:    "localfs",
			Path:    "archive",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Narrative: NarrativeConfig{
			Provider: "rule",
		},
	}
}

// Validate checks the configuration for errors. Window violations are
// rejected here, before any backtest is accepted.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Backtest.ShortWindow <= 0 || c.Backtest.LongWindow <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("windows must be positive, got %d/%d", c.Backtest.ShortWindow, c.Backtest.LongWindow))
	}
	if c.Backtest.ShortWindow >= c.Backtest.LongWindow {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("short_window %d must be smaller than long_window %d",
				c.Backtest.ShortWindow, c.Backtest.LongWindow))
	}

	switch c.Provider.Name {
	case "yahoo":
	case "csv":
		if c.Provider.CSVPath == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("provider.csv_path required when provider is csv"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown provider %q", c.Provider.Name))
	}

	if c.Archive.Enabled && c.Archive.Type == "s3" && c.Archive.S3.Bucket == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("archive.s3.bucket required for s3 archive"))
	}

	switch c.Narrative.Provider {
	case "", "rule":
	case "claude":
		if c.Narrative.Claude.APIKey == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("claude api_key required when narrative provider is claude"))
		}
	case "openai":
		if c.Narrative.OpenAI.APIKey == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("openai api_key required when narrative provider is openai"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown narrative provider %q", c.Narrative.Provider))
	}

	return nil
}
