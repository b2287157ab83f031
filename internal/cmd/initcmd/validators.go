package initcmd

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/certwatch-app/cw-certscan/internal/config"
)

// ValidateConfigPath validates the output file path.
func ValidateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	return validateParentDir(path)
}

// ValidateOptionalPath validates an optional file path such as the log file
// or the metrics textfile.
func ValidateOptionalPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return validateParentDir(path)
}

func validateParentDir(path string) error {
	// Check if directory exists or can be created
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				// Directory doesn't exist, check if we can create it
				return nil // We'll create it during write
			}
			return fmt.Errorf("cannot access directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("'%s' is not a directory", dir)
		}
	}

	return nil
}

// ValidateHostname validates a host entry. An optional ":port" suffix is
// accepted; an empty entry ends host input.
func ValidateHostname(hostname string) error {
	if hostname == "" {
		return nil
	}

	// Basic hostname validation
	if strings.Contains(hostname, " ") {
		return fmt.Errorf("hostname cannot contain spaces")
	}

	if strings.Contains(hostname, "://") {
		return fmt.Errorf("hostname should not include protocol (use 'example.com' not 'https://example.com')")
	}

	host := hostname
	if h, port, err := net.SplitHostPort(hostname); err == nil {
		if err := ValidatePort(port); err != nil {
			return err
		}
		host = h
	}

	// Check for valid hostname characters
	host = strings.ToLower(host)
	for _, c := range host {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '.' || c == '-' || c == ':') {
			return fmt.Errorf("hostname contains invalid character: '%c'", c)
		}
	}

	return nil
}

// ValidatePort validates a port number string.
func ValidatePort(portStr string) error {
	if portStr == "" {
		return nil // Will use default 443
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	return nil
}

// ValidateConcurrency validates the worker pool size. Zero selects the default.
func ValidateConcurrency(s string) error {
	if s == "" {
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("concurrency must be a number")
	}

	if n < 0 || n > config.MaxConcurrency {
		return fmt.Errorf("concurrency must be between 0 and %d", config.MaxConcurrency)
	}

	return nil
}

// ValidateTimeout validates a per-attempt timeout such as "10s". Zero disables it.
func ValidateTimeout(s string) error {
	if s == "" || s == "0" {
		return nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("timeout must be a duration like 10s or 1m")
	}

	if d < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	return nil
}
