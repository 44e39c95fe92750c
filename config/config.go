// Package config loads the server configuration from a yaml file, defaults and OZONE_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the root configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Model    ModelConfig    `mapstructure:"model"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig configures the http listener
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ModelConfig points at the fitted model artifact loaded at startup
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// ForecastConfig bounds what a request may ask for
type ForecastConfig struct {
	MaxHorizonDays int  `mapstructure:"max_horizon_days"`
	NonNegative    bool `mapstructure:"non_negative"`
}

// UIConfig configures the rendered page
type UIConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
	// ChartAssetsHost serves the echarts javascript, empty uses the public go-echarts host
	ChartAssetsHost string `mapstructure:"chart_assets_host"`
}

// LoggingConfig configures the zerolog output
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// Load loads configuration from file. Without a path the default locations are searched and
// a missing file falls back to the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/ozone-forecaster")
	}

	setDefaults(v)

	v.SetEnvPrefix("OZONE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", def.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)

	v.SetDefault("model.path", def.Model.Path)

	v.SetDefault("forecast.max_horizon_days", def.Forecast.MaxHorizonDays)
	v.SetDefault("forecast.non_negative", def.Forecast.NonNegative)

	v.SetDefault("ui.default_language", def.UI.DefaultLanguage)
	v.SetDefault("ui.chart_assets_host", def.UI.ChartAssetsHost)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output_path", def.Logging.OutputPath)
	v.SetDefault("logging.time_format", def.Logging.TimeFormat)
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Model: ModelConfig{
			Path: "modelo_O3_prophet.json",
		},
		Forecast: ForecastConfig{
			MaxHorizonDays: 365,
			NonNegative:    true,
		},
		UI: UIConfig{
			DefaultLanguage: "pt-BR",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			TimeFormat: "RFC3339",
		},
	}
}

// Validate checks every value is usable
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range, %w", c.Server.Port, ErrInvalidConfig)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative, %w", ErrInvalidConfig)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is required, %w", ErrInvalidConfig)
	}
	if c.Forecast.MaxHorizonDays < 1 {
		return fmt.Errorf("forecast.max_horizon_days %d must be at least 1, %w", c.Forecast.MaxHorizonDays, ErrInvalidConfig)
	}
	if c.UI.DefaultLanguage == "" {
		return fmt.Errorf("ui.default_language is required, %w", ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "json", "console", "pretty":
	default:
		return fmt.Errorf("logging.format %q must be json or console, %w", c.Logging.Format, ErrInvalidConfig)
	}
	return nil
}
