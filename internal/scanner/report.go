package scanner

import (
	"slices"
	"strings"
)

// Entry is a single hostname inside a report bucket.
type Entry struct {
	Err         error
	Hostname    string
	Reason      string
	Certificate []byte
}

type bucket struct {
	index   map[string]int
	entries []Entry
}

// Report groups probe results by status, then by hostname. Buckets are always
// walked in the declared status order; entries keep the order in which they
// were added. Adding a hostname already present in the same bucket replaces
// the entry in place.
type Report struct {
	buckets [numStatuses]bucket
}

// NewReport creates an empty report.
func NewReport() *Report {
	r := &Report{}
	for i := range r.buckets {
		r.buckets[i].index = make(map[string]int)
	}
	return r
}

// Add folds a result into the report.
func (r *Report) Add(result ProbeResult) {
	status := result.Status
	if !status.known() {
		status = StatusUnavailable
	}

	entry := Entry{
		Hostname: result.Hostname,
		Reason:   result.Reason,
		Err:      result.Err,
	}
	if status != StatusUnavailable {
		entry.Certificate = result.Certificate
	}

	b := &r.buckets[status]
	if i, ok := b.index[entry.Hostname]; ok {
		b.entries[i] = entry
		return
	}
	b.index[entry.Hostname] = len(b.entries)
	b.entries = append(b.entries, entry)
}

// Entries returns a copy of the entries recorded under status.
func (r *Report) Entries(status Status) []Entry {
	if !status.known() {
		return nil
	}
	return slices.Clone(r.buckets[status].entries)
}

// Lookup returns the entry for hostname under status.
func (r *Report) Lookup(status Status, hostname string) (Entry, bool) {
	if !status.known() {
		return Entry{}, false
	}
	b := &r.buckets[status]
	i, ok := b.index[hostname]
	if !ok {
		return Entry{}, false
	}
	return b.entries[i], true
}

// Count returns the number of entries under status.
func (r *Report) Count(status Status) int {
	if !status.known() {
		return 0
	}
	return len(r.buckets[status].entries)
}

// Len returns the number of entries across all buckets.
func (r *Report) Len() int {
	n := 0
	for i := range r.buckets {
		n += len(r.buckets[i].entries)
	}
	return n
}

// Sorted returns a copy of the report with each bucket ordered by hostname.
func (r *Report) Sorted() *Report {
	out := NewReport()
	for _, status := range Statuses() {
		entries := r.Entries(status)
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return strings.Compare(a.Hostname, b.Hostname)
		})
		for _, e := range entries {
			out.Add(ProbeResult{
				Hostname:    e.Hostname,
				Status:      status,
				Reason:      e.Reason,
				Err:         e.Err,
				Certificate: e.Certificate,
			})
		}
	}
	return out
}
