// Package cmd provides CLI commands for the CertWatch certificate scanner.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command. Without a subcommand it scans.
var rootCmd = &cobra.Command{
	Use:   "cw-certscan [input] [output]",
	Short: "CertWatch Certificate Scanner - classify TLS certificates across many hosts",
	Long: `CertWatch Certificate Scanner connects to every host in a list, fetches the
presented TLS certificate and sorts hosts into VALID, INVALID and UNAVAILABLE.

Hosts are read one per line from input and the report is written to output.
Either may be "-" (the default) for stdin/stdout:
  cw-certscan hosts.txt report.txt
  cat hosts.txt | cw-certscan --format summary

For more information, visit: https://certwatch.app/docs/certscan`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE:         runScan,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./cw-certscan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Bind flags to viper
	//nolint:errcheck // error is ignored because the flag is guaranteed to exist
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	addScanFlags(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/certwatch")
		viper.SetConfigType("yaml")
		viper.SetConfigName("cw-certscan")
	}

	// Read environment variables with CW_ prefix, e.g. CW_SCAN_TIMEOUT
	viper.SetEnvPrefix("CW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Warning: cannot read config file:", err)
	}
}
