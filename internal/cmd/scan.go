package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/certwatch-app/cw-certscan/internal/config"
	"github.com/certwatch-app/cw-certscan/internal/hostlist"
	"github.com/certwatch-app/cw-certscan/internal/logging"
	"github.com/certwatch-app/cw-certscan/internal/render"
	"github.com/certwatch-app/cw-certscan/internal/runner"
)

var scanCmd = &cobra.Command{
	Use:   "scan [input] [output]",
	Short: "Scan a list of hosts and write a certificate report",
	Long: `Scan every host listed in input (one per line, "#" starts a comment) and
write a report to output. Both default to "-" (stdin/stdout).

Example:
  cw-certscan scan hosts.txt report.txt
  cw-certscan scan -c cw-certscan.yaml --format json - report.json
  CW_SCAN_TIMEOUT=5s cw-certscan scan < hosts.txt`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE:         runScan,
}

// scanFlags maps command-line flags to config keys.
var scanFlags = map[string]string{
	"port":             "scan.port",
	"concurrency":      "scan.concurrency",
	"timeout":          "scan.timeout",
	"format":           "output.format",
	"sort":             "output.sort",
	"log-level":        "log.level",
	"log-file":         "log.file",
	"metrics-textfile": "metrics.textfile",
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addScanFlags(scanCmd)
}

func addScanFlags(c *cobra.Command) {
	f := c.Flags()
	f.Int("port", 443, "port used for hosts without an explicit :port")
	f.Int("concurrency", 0, "maximum simultaneous probes (0: min(32, CPUs+4))")
	f.Duration("timeout", 0, "per-attempt connect and handshake timeout (0: none)")
	f.StringP("format", "f", string(render.FormatText),
		"report format: "+strings.Join(render.Formats(), ", "))
	f.Bool("sort", false, "sort hosts alphabetically within each status")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("log-file", "", "also write JSON logs to this file, rotated")
	f.String("metrics-textfile", "", "write Prometheus metrics to this file after the scan")
}

// bindScanFlags binds the flags of the running command, so the root command
// and the scan subcommand can share config keys without clobbering each other.
func bindScanFlags(flags *pflag.FlagSet) error {
	for name, key := range scanFlags {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := bindScanFlags(cmd.Flags()); err != nil {
		return err
	}

	// Load and validate configuration
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if validationErr := cfg.Validate(); validationErr != nil {
		return fmt.Errorf("invalid configuration: %w", validationErr)
	}

	logger, closer, err := logging.New(cfg.Log, viper.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() //nolint:errcheck // stderr sync fails on some platforms
		_ = closer.Close()
	}()

	r, err := runner.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Warn("received signal, cancelling outstanding probes", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	input, output := hostlist.Stdio, hostlist.Stdio
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}

	if err := r.RunPaths(ctx, input, output); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scan failed: %w", err)
	}

	return nil
}
