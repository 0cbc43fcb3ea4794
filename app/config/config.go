package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Output renderings supported by the command line tool.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config controls the command line tool.
type Config struct {
	// LogLevel is the minimal level of the console logger: "debug",
	// "info", "warn", "error" or "fatal".
	LogLevel string `yaml:"log_level"`

	// Output selects how results are rendered: "text" or "json".
	Output string `yaml:"output"`
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	fillConfigDefaults(cfg)

	return cfg
}

// NewConfigFromFile reads a YAML config file. Missing fields are filled
// with defaults before validation.
func NewConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read file '%s': %w", configPath, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	fillConfigDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// NewConfigFromPath resolves the effective configuration: the file at
// configPath when non-empty, the defaults otherwise.
func NewConfigFromPath(configPath string) (*Config, error) {
	if configPath == "" {
		return NewDefaultConfig(), nil
	}

	return NewConfigFromFile(configPath)
}

// Override replaces fields with non-empty flag values and revalidates.
// Flags take precedence over the config file.
func (c *Config) Override(logLevel, output string) error {
	if logLevel != "" {
		c.LogLevel = logLevel
	}

	if output != "" {
		c.Output = output
	}

	if err := validateConfig(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	return nil
}

func fillConfigDefaults(c *Config) {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Output == "" {
		c.Output = OutputText
	}
}

func validateConfig(c *Config) error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid value of field `log_level`: %v", c.LogLevel)
	}

	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("invalid value of field `output`: %v", c.Output)
	}

	return nil
}
