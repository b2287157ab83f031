package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/certwatch-app/cw-certscan/internal/config"
	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate the cw-certscan configuration file without scanning.

Example:
  cw-certscan validate -c /path/to/cw-certscan.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	concurrency := cfg.Scan.Concurrency
	if concurrency == 0 {
		concurrency = scanner.DefaultConcurrency()
	}

	timeout := "none"
	if cfg.Scan.Timeout > 0 {
		timeout = cfg.Scan.Timeout.String()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration is valid!")
	fmt.Fprintf(out, "  Port: %d\n", cfg.Scan.Port)
	fmt.Fprintf(out, "  Concurrency: %d\n", concurrency)
	fmt.Fprintf(out, "  Timeout: %s\n", timeout)
	fmt.Fprintf(out, "  Format: %s\n", cfg.Output.Format)
	fmt.Fprintf(out, "  Configured hosts: %d\n", len(cfg.Hosts))
	if cfg.Log.File != "" {
		fmt.Fprintf(out, "  Log file: %s\n", cfg.Log.File)
	}
	if cfg.Metrics.Textfile != "" {
		fmt.Fprintf(out, "  Metrics textfile: %s\n", cfg.Metrics.Textfile)
	}

	return nil
}
