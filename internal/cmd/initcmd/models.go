// Package initcmd provides the interactive init command wizard.
package initcmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/certwatch-app/cw-certscan/internal/config"
)

// DefaultConfigPath is where the wizard writes unless told otherwise.
const DefaultConfigPath = "./cw-certscan.yaml"

// WizardState holds all collected input during the wizard.
type WizardState struct {
	// Output configuration
	ConfigPath    string
	OverwriteFile bool

	// Scan configuration
	PortStr        string
	ConcurrencyStr string
	Timeout        string

	// Report configuration
	Format string
	Sort   bool

	// Logging and metrics
	LogLevel        string
	LogFile         string
	MetricsTextfile string

	// Hosts stored in the config file
	Hosts       []string
	CurrentHost string
	AddAnother  bool
}

// NewWizardState creates a new WizardState with sensible defaults.
func NewWizardState() *WizardState {
	defaults := config.Default()
	return &WizardState{
		ConfigPath:     DefaultConfigPath,
		PortStr:        strconv.Itoa(defaults.Scan.Port),
		ConcurrencyStr: "0",
		Timeout:        "0s",
		Format:         defaults.Output.Format,
		LogLevel:       defaults.Log.Level,
		Hosts:          make([]string, 0),
	}
}

// ToConfig converts the wizard state to a config.Config struct.
func (s *WizardState) ToConfig() (*config.Config, error) {
	cfg := config.Default()

	// Parse port
	if s.PortStr != "" {
		port, err := strconv.Atoi(strings.TrimSpace(s.PortStr))
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		cfg.Scan.Port = port
	}

	// Parse concurrency
	if s.ConcurrencyStr != "" {
		n, err := strconv.Atoi(strings.TrimSpace(s.ConcurrencyStr))
		if err != nil {
			return nil, fmt.Errorf("invalid concurrency: %w", err)
		}
		cfg.Scan.Concurrency = n
	}

	// Parse timeout
	if s.Timeout != "" && s.Timeout != "0" {
		timeout, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
		cfg.Scan.Timeout = timeout
	}

	if s.Format != "" {
		cfg.Output.Format = s.Format
	}
	cfg.Output.Sort = s.Sort

	if s.LogLevel != "" {
		cfg.Log.Level = s.LogLevel
	}
	cfg.Log.File = strings.TrimSpace(s.LogFile)
	cfg.Metrics.Textfile = strings.TrimSpace(s.MetricsTextfile)
	cfg.Hosts = parseHosts(strings.Join(s.Hosts, ","))

	return cfg, nil
}

// parseHosts parses comma-separated hostnames into a slice.
func parseHosts(hostsStr string) []string {
	if strings.TrimSpace(hostsStr) == "" {
		return nil
	}

	parts := strings.Split(hostsStr, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		host := strings.TrimSpace(p)
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// ResetCurrentHost resets the current host input for the next entry.
func (s *WizardState) ResetCurrentHost() {
	s.CurrentHost = ""
	s.AddAnother = false
}

// SaveCurrentHost saves the current host to the list.
func (s *WizardState) SaveCurrentHost() {
	if host := strings.TrimSpace(s.CurrentHost); host != "" {
		s.Hosts = append(s.Hosts, host)
	}
}
