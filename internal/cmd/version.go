package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certwatch-app/cw-certscan/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, git commit, and build date of the CertWatch Certificate Scanner.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetInfo()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "CertWatch Certificate Scanner\n")
		fmt.Fprintf(out, "  Version:    %s\n", info.Version)
		fmt.Fprintf(out, "  Commit:     %s\n", info.GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  Platform:   %s/%s\n", info.OS, info.Arch)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
