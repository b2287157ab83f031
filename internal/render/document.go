package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	cfsslinfo "github.com/cloudflare/cfssl/certinfo"
	"gopkg.in/yaml.v3"

	"github.com/certwatch-app/cw-certscan/internal/certinfo"
	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

// Document is the machine readable form of a report shared by the JSON and
// YAML formats. Results follow bucket order, then report order.
type Document struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	RunID       string    `json:"run_id" yaml:"run_id"`
	Version     string    `json:"version,omitempty" yaml:"version,omitempty"`
	Results     []Result  `json:"results" yaml:"results"`
	Counts      Counts    `json:"counts" yaml:"counts"`
}

// Counts holds the number of hosts per status.
type Counts struct {
	Valid       int `json:"valid" yaml:"valid"`
	Invalid     int `json:"invalid" yaml:"invalid"`
	Unavailable int `json:"unavailable" yaml:"unavailable"`
}

// Result is one host in a Document.
type Result struct {
	Certificate *cfsslinfo.Certificate `json:"certificate,omitempty" yaml:"certificate,omitempty"`
	Hostname    string                 `json:"hostname" yaml:"hostname"`
	Status      string                 `json:"status" yaml:"status"`
	Reason      string                 `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error       string                 `json:"error,omitempty" yaml:"error,omitempty"`
	DecodeError string                 `json:"decode_error,omitempty" yaml:"decode_error,omitempty"`
}

// NewDocument builds the machine readable form of report.
func NewDocument(report *scanner.Report, meta Meta) Document {
	doc := Document{
		RunID:       meta.RunID,
		GeneratedAt: meta.GeneratedAt.UTC(),
		Version:     meta.Version,
		Counts: Counts{
			Valid:       report.Count(scanner.StatusValid),
			Invalid:     report.Count(scanner.StatusInvalid),
			Unavailable: report.Count(scanner.StatusUnavailable),
		},
		Results: make([]Result, 0, report.Len()),
	}

	for _, status := range scanner.Statuses() {
		for _, e := range report.Entries(status) {
			r := Result{
				Hostname: e.Hostname,
				Status:   status.String(),
				Reason:   e.Reason,
			}
			if e.Err != nil {
				r.Error = e.Err.Error()
			}
			if e.Certificate != nil {
				info, err := certinfo.Describe(e.Certificate)
				if err != nil {
					r.DecodeError = err.Error()
				} else {
					r.Certificate = info
				}
			}
			doc.Results = append(doc.Results, r)
		}
	}

	return doc
}

// JSON writes the report as an indented JSON document.
func JSON(w io.Writer, report *scanner.Report, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(report, meta)); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// YAML writes the report as a YAML document.
func YAML(w io.Writer, report *scanner.Report, meta Meta) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(report, meta)); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML report: %w", err)
	}
	return nil
}
