package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/certwatch-app/cw-certscan/internal/certinfo"
	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

const dateLayout = "2006-01-02"

// Summary writes a markdown table with one row per host followed by the
// per-status totals.
func Summary(w io.Writer, report *scanner.Report) error {
	title := cases.Title(language.English)

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Hostname", "Status", "Subject", "Issuer", "Expires", "Reason"})

	var rows [][]string
	for _, status := range scanner.Statuses() {
		for _, e := range report.Entries(status) {
			subject, issuer, expires := "-", "-", "-"
			if e.Certificate != nil {
				if cert, err := certinfo.Parse(e.Certificate); err == nil {
					subject = cert.Subject.CommonName
					issuer = cert.Issuer.CommonName
					expires = cert.NotAfter.UTC().Format(dateLayout)
				}
			}
			reason := e.Reason
			if reason == "" {
				reason = "-"
			}
			rows = append(rows, []string{
				e.Hostname,
				title.String(status.String()),
				subject,
				issuer,
				expires,
				reason,
			})
		}
	}

	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build summary table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render summary table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%s: %d, %s: %d, %s: %d\n",
		title.String(scanner.StatusValid.String()), report.Count(scanner.StatusValid),
		title.String(scanner.StatusInvalid.String()), report.Count(scanner.StatusInvalid),
		title.String(scanner.StatusUnavailable.String()), report.Count(scanner.StatusUnavailable),
	)
	return err
}
