package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/certwatch-app/cw-certscan/internal/certinfo"
	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

// Text writes the classic report: one "*** STATUS ***" section per non-empty
// bucket, each host followed by its certificate dump. Unavailable hosts have
// no dump.
func Text(w io.Writer, report *scanner.Report) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, status := range scanner.Statuses() {
		entries := report.Entries(status)
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(buf, "*** %s ***\n\n", status)
		for _, e := range entries {
			writeTextEntry(buf, e)
		}

		// flush per section so large reports don't sit in one buffer
		if _, err := buf.WriteTo(w); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		buf.Reset()
	}

	return nil
}

func writeTextEntry(buf *bytebufferpool.ByteBuffer, e scanner.Entry) {
	fmt.Fprintf(buf, "Hostname: %s\n", e.Hostname)
	if e.Certificate != nil {
		dump, err := certinfo.Dump(e.Certificate)
		if err != nil {
			dump = fmt.Sprintf("Unable to decode certificate: %v\n", err)
		}
		_, _ = buf.WriteString(dump)
		if !strings.HasSuffix(dump, "\n") {
			_ = buf.WriteByte('\n')
		}
	}
	_ = buf.WriteByte('\n')
}
