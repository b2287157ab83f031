// Package config handles configuration loading and validation for cw-certscan.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/certwatch-app/cw-certscan/internal/render"
	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

// MaxConcurrency caps the worker pool.
const MaxConcurrency = 1024

// Config represents the complete scanner configuration.
type Config struct {
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Hosts   []string      `mapstructure:"hosts" yaml:"hosts,omitempty"`
	Scan    ScanConfig    `mapstructure:"scan" yaml:"scan"`
}

// ScanConfig contains probe settings.
// Fields are ordered for optimal memory alignment.
type ScanConfig struct {
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Port        int           `mapstructure:"port" yaml:"port"`
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency"`
}

// OutputConfig contains report settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Sort   bool   `mapstructure:"sort" yaml:"sort"`
}

// LogConfig contains logging settings.
// Fields are ordered for optimal memory alignment.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// MetricsConfig contains the Prometheus textfile export settings.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty"`
}

// Load reads configuration from viper.
func Load(v *viper.Viper) (*Config, error) {
	// Set defaults
	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg, err := Load(viper.New())
	if err != nil {
		// defaults alone always unmarshal
		panic(err)
	}
	return cfg
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Scan defaults
	v.SetDefault("scan.port", scanner.DefaultPort)
	v.SetDefault("scan.concurrency", 0)
	v.SetDefault("scan.timeout", "0s")

	// Output defaults
	v.SetDefault("output.format", string(render.FormatText))
	v.SetDefault("output.sort", false)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)

	// Metrics defaults
	v.SetDefault("metrics.textfile", "")

	// Registered so CW_HOSTS is seen by Unmarshal
	v.SetDefault("hosts", []string{})
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate scan config
	if err := c.validateScan(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	// Validate output config
	if err := c.validateOutput(); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	// Validate log config
	if err := c.validateLog(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	// Validate extra hosts
	if err := c.validateHosts(); err != nil {
		return fmt.Errorf("hosts: %w", err)
	}

	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Port < 1 || c.Scan.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	if c.Scan.Concurrency < 0 || c.Scan.Concurrency > MaxConcurrency {
		return fmt.Errorf("concurrency must be between 0 and %d", MaxConcurrency)
	}

	if c.Scan.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	return nil
}

func (c *Config) validateOutput() error {
	if _, err := render.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLog() error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("level must be one of: debug, info, warn, error")
	}

	if c.Log.File == "" {
		return nil
	}

	if c.Log.MaxSizeMB < 1 {
		return fmt.Errorf("max_size_mb must be at least 1")
	}

	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("max_backups must not be negative")
	}

	if c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("max_age_days must not be negative")
	}

	return nil
}

func (c *Config) validateHosts() error {
	for i, h := range c.Hosts {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("[%d]: hostname is required", i)
		}
	}
	return nil
}
