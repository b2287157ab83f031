// Package render turns a scan report into one of the supported output formats.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

// Format names an output format.
type Format string

const (
	FormatText      Format = "text"
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
	FormatSummary   Format = "summary"
	FormatCycloneDX Format = "cyclonedx"
)

var formats = []Format{FormatText, FormatJSON, FormatYAML, FormatSummary, FormatCycloneDX}

// Formats lists the supported format names.
func Formats() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// Meta describes the run that produced a report.
type Meta struct {
	GeneratedAt time.Time
	RunID       string
	Version     string
}

// Write renders report to w in the given format.
func Write(w io.Writer, format Format, report *scanner.Report, meta Meta) error {
	switch format {
	case FormatText, "":
		return Text(w, report)
	case FormatJSON:
		return JSON(w, report, meta)
	case FormatYAML:
		return YAML(w, report, meta)
	case FormatSummary:
		return Summary(w, report)
	case FormatCycloneDX:
		return CycloneDX(w, report, meta)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
