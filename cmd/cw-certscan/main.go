// Command cw-certscan fetches the TLS certificate of every listed host and
// reports which are valid, invalid or unreachable.
package main

import (
	"os"

	"github.com/certwatch-app/cw-certscan/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
