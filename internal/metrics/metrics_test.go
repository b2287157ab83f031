package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

func TestRecorder_ObserveProbe(t *testing.T) {
	validBefore := testutil.ToFloat64(ProbesTotal.WithLabelValues("VALID"))
	invalidBefore := testutil.ToFloat64(ProbesTotal.WithLabelValues("INVALID"))
	retriesBefore := testutil.ToFloat64(DegradedRetriesTotal)
	refusedBefore := testutil.ToFloat64(UnavailableTotal.WithLabelValues(scanner.ReasonRefused))
	unknownBefore := testutil.ToFloat64(UnavailableTotal.WithLabelValues(scanner.ReasonUnknown))

	var rec Recorder
	rec.ObserveProbe(scanner.ProbeResult{Hostname: "a", Status: scanner.StatusValid, Duration: 10 * time.Millisecond})
	rec.ObserveProbe(scanner.ProbeResult{Hostname: "b", Status: scanner.StatusInvalid, Reason: scanner.ReasonExpired})
	rec.ObserveProbe(scanner.ProbeResult{Hostname: "c", Status: scanner.StatusUnavailable, Reason: scanner.ReasonRefused})
	rec.ObserveProbe(scanner.ProbeResult{
		Hostname: "d",
		Status:   scanner.StatusUnavailable,
		Err:      &scanner.ProbeError{Kind: scanner.KindDegradedRetry, Op: "retry without verification", Err: errors.New("reset")},
	})

	if got := testutil.ToFloat64(ProbesTotal.WithLabelValues("VALID")) - validBefore; got != 1 {
		t.Errorf("valid probes delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ProbesTotal.WithLabelValues("INVALID")) - invalidBefore; got != 1 {
		t.Errorf("invalid probes delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(DegradedRetriesTotal) - retriesBefore; got != 2 {
		t.Errorf("degraded retries delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(UnavailableTotal.WithLabelValues(scanner.ReasonRefused)) - refusedBefore; got != 1 {
		t.Errorf("refused delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(UnavailableTotal.WithLabelValues(scanner.ReasonUnknown)) - unknownBefore; got != 1 {
		t.Errorf("unknown reason delta = %v, want 1", got)
	}
}

func TestRecordRun(t *testing.T) {
	finished := time.Unix(1767225600, 0)
	RecordRun(3, finished, "1.0.0")

	if got := testutil.ToFloat64(Hosts); got != 3 {
		t.Errorf("Hosts = %v, want 3", got)
	}
	if got := testutil.ToFloat64(LastRunTimestamp); got != 1767225600 {
		t.Errorf("LastRunTimestamp = %v, want 1767225600", got)
	}
	if got := testutil.ToFloat64(BuildInfo.WithLabelValues("1.0.0")); got != 1 {
		t.Errorf("BuildInfo = %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordRun(1, time.Now(), "test")
	path := filepath.Join(t.TempDir(), "certscan.prom")

	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"certscan_hosts", "certscan_last_run_timestamp_seconds", "certscan_build_info"} {
		if !strings.Contains(string(b), name) {
			t.Errorf("textfile missing %s", name)
		}
	}

	if err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")); err == nil {
		t.Error("WriteTextfile() into a missing directory should fail")
	}
}
