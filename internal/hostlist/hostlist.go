// Package hostlist reads the line-oriented list of hosts to scan.
package hostlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

// Read returns one entry per non-blank line. Surrounding whitespace is
// trimmed and lines starting with '#' are skipped. Entries are not
// validated; a malformed host simply fails its probe.
func Read(r io.Reader) ([]string, error) {
	var hosts []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read host list: %w", err)
	}

	return hosts, nil
}

// Open opens path for reading, or stdin when path is "-" or empty.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open host list: %w", err)
	}
	return f, nil
}

// Create opens path for writing, or stdout when path is "-" or empty.
func Create(path string) (io.WriteCloser, error) {
	if path == "" || path == Stdio {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Merge appends extra to hosts, skipping blank entries.
func Merge(hosts []string, extra ...string) []string {
	for _, h := range extra {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
