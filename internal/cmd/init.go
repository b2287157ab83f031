package cmd

import (
	"github.com/spf13/cobra"

	"github.com/certwatch-app/cw-certscan/internal/cmd/initcmd"
)

var (
	initOutputPath     string
	initNonInteractive bool
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new cw-certscan configuration",
	Long: `Interactively create a new cw-certscan configuration file.

The wizard will guide you through setting up:
  • Scan settings (default port, concurrency, timeout)
  • Report format, logging and metrics export
  • Hosts that are always scanned

Examples:
  # Interactive mode (default)
  cw-certscan init

  # Specify output path
  cw-certscan init -o /etc/certwatch/cw-certscan.yaml

  # Non-interactive mode (for CI/scripting)
  CW_OUTPUT_FORMAT=json CW_HOSTS=api.example.com cw-certscan init --non-interactive

Environment variables for non-interactive mode:
  CW_SCAN_PORT         (optional) Default port (default: 443)
  CW_SCAN_CONCURRENCY  (optional) Maximum simultaneous probes (default: 0, automatic)
  CW_SCAN_TIMEOUT      (optional) Per-attempt timeout (default: none)
  CW_OUTPUT_FORMAT     (optional) text, json, yaml, summary or cyclonedx (default: text)
  CW_OUTPUT_SORT       (optional) Sort hosts within each status (default: false)
  CW_LOG_LEVEL         (optional) Log level (default: info)
  CW_LOG_FILE          (optional) Rotated JSON log file
  CW_METRICS_TEXTFILE  (optional) Prometheus textfile path
  CW_HOSTS             (optional) Comma-separated hostnames always scanned`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", initcmd.DefaultConfigPath,
		"Output path for the configuration file")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false,
		"Run in non-interactive mode using environment variables")
}

func runInit(_ *cobra.Command, _ []string) error {
	if initNonInteractive {
		return initcmd.RunNonInteractive(initOutputPath)
	}

	wizard := initcmd.NewWizard()
	wizard.SetOutputPath(initOutputPath)
	return wizard.Run()
}
