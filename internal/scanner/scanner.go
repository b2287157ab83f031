package scanner

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HostProber classifies a single host. *Prober is the production implementation.
type HostProber interface {
	Probe(ctx context.Context, hostname string) ProbeResult
}

// Observer is notified of every result as it is folded into a Report.
// It is always called from the goroutine running ProbeAll.
type Observer interface {
	ObserveProbe(result ProbeResult)
}

// DefaultConcurrency is the worker pool size used when none is configured.
func DefaultConcurrency() int {
	return min(32, runtime.NumCPU()+4)
}

// Scanner probes many hosts over a bounded worker pool.
// Fields are ordered for optimal memory alignment.
type Scanner struct {
	prober      HostProber
	observer    Observer
	logger      *zap.Logger
	concurrency int
}

// New creates a new Scanner. A concurrency below 1 selects DefaultConcurrency.
func New(prober HostProber, concurrency int, logger *zap.Logger) *Scanner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		prober:      prober,
		concurrency: concurrency,
		logger:      logger,
	}
}

// SetObserver registers an observer for folded results.
func (s *Scanner) SetObserver(o Observer) {
	s.observer = o
}

// Concurrency returns the worker pool size.
func (s *Scanner) Concurrency() int {
	return s.concurrency
}

// ProbeAll probes every hostname exactly once and returns the grouped report.
// Workers hand results back over a channel; only this goroutine touches the
// report, so it needs no locking.
func (s *Scanner) ProbeAll(ctx context.Context, hostnames []string) *Report {
	report := NewReport()
	if len(hostnames) == 0 {
		return report
	}

	workers := min(s.concurrency, len(hostnames))
	start := time.Now()
	s.logger.Debug("dispatching probes",
		zap.Int("hosts", len(hostnames)),
		zap.Int("workers", workers),
	)

	results := make(chan ProbeResult, workers)
	go s.dispatch(ctx, hostnames, workers, results)

	for result := range results {
		report.Add(result)
		if s.observer != nil {
			s.observer.ObserveProbe(result)
		}
	}

	s.logger.Debug("probes complete",
		zap.Int("hosts", len(hostnames)),
		zap.Duration("duration", time.Since(start)),
	)

	return report
}

// dispatch runs one probe per hostname with at most workers in flight and
// closes results once all of them have reported.
func (s *Scanner) dispatch(ctx context.Context, hostnames []string, workers int, results chan<- ProbeResult) {
	defer close(results)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, hostname := range hostnames {
		hostname := hostname
		g.Go(func() error {
			results <- s.prober.Probe(ctx, hostname)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return an error
}
