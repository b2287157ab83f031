// Package metrics exposes scan results as Prometheus metrics. The scanner is a
// one-shot CLI, so metrics are exported through the node_exporter textfile
// collector rather than served over HTTP.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

// Registry holds every cw-certscan metric.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		ProbesTotal,
		ProbeDuration,
		DegradedRetriesTotal,
		UnavailableTotal,
		LastRunTimestamp,
		Hosts,
		BuildInfo,
	)
}

var (
	// Probe metrics

	// ProbesTotal counts classified probes
	ProbesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "certscan",
		Name:      "probes_total",
		Help:      "Total number of host probes by resulting status",
	}, []string{"status"})

	// ProbeDuration tracks how long each probe took, both attempts included
	ProbeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "certscan",
		Name:      "probe_duration_seconds",
		Help:      "Duration of host probes in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	// DegradedRetriesTotal counts retries made without verification
	DegradedRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "certscan",
		Name:      "degraded_retries_total",
		Help:      "Total number of retries made with certificate verification disabled",
	})

	// UnavailableTotal counts unavailable hosts by failure reason
	UnavailableTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "certscan",
		Name:      "unavailable_total",
		Help:      "Total number of unavailable hosts by failure reason",
	}, []string{"reason"})

	// Run metrics

	// LastRunTimestamp records when the last scan finished
	LastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "certscan",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last completed scan",
	})

	// Hosts tracks the number of hosts in the last scan
	Hosts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "certscan",
		Name:      "hosts",
		Help:      "Number of hosts in the last scan",
	})

	// BuildInfo provides scanner metadata
	BuildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "certscan",
		Name:      "build_info",
		Help:      "Scanner build information",
	}, []string{"version"})
)

// Recorder feeds probe results into the package metrics. It satisfies
// scanner.Observer.
type Recorder struct{}

// ObserveProbe records one classified probe.
func (Recorder) ObserveProbe(r scanner.ProbeResult) {
	status := r.Status.String()
	ProbesTotal.WithLabelValues(status).Inc()
	ProbeDuration.WithLabelValues(status).Observe(r.Duration.Seconds())

	if r.Status == scanner.StatusInvalid || scanner.KindOf(r.Err) == scanner.KindDegradedRetry {
		DegradedRetriesTotal.Inc()
	}
	if r.Status == scanner.StatusUnavailable {
		reason := r.Reason
		if reason == "" {
			reason = scanner.ReasonUnknown
		}
		UnavailableTotal.WithLabelValues(reason).Inc()
	}
}

// RecordRun records the size and completion time of a scan.
func RecordRun(hosts int, finished time.Time, version string) {
	Hosts.Set(float64(hosts))
	LastRunTimestamp.Set(float64(finished.Unix()))
	BuildInfo.WithLabelValues(version).Set(1)
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
