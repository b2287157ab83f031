// Package runner wires configuration, probing, rendering and metrics into a
// single scan run.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/certwatch-app/cw-certscan/internal/config"
	"github.com/certwatch-app/cw-certscan/internal/hostlist"
	"github.com/certwatch-app/cw-certscan/internal/metrics"
	"github.com/certwatch-app/cw-certscan/internal/render"
	"github.com/certwatch-app/cw-certscan/internal/scanner"
	"github.com/certwatch-app/cw-certscan/internal/version"
)

// Option configures a Runner.
type Option func(*Runner)

// WithProber replaces the TLS prober, mainly for tests.
func WithProber(p scanner.HostProber) Option {
	return func(r *Runner) {
		r.prober = p
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// Runner performs one scan per Run call.
// Fields are ordered for optimal memory alignment.
type Runner struct {
	config  *config.Config
	prober  scanner.HostProber
	scanner *scanner.Scanner
	logger  *zap.Logger
	now     func() time.Time
	runID   string
	format  render.Format
}

// New creates a new Runner.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Runner, error) {
	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to select output format: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Runner{
		config: cfg,
		format: format,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	r.logger = logger.With(zap.String("run_id", r.runID))

	if r.prober == nil {
		r.prober = scanner.NewProber(
			scanner.WithPort(cfg.Scan.Port),
			scanner.WithTimeout(cfg.Scan.Timeout),
			scanner.WithLogger(r.logger),
		)
	}

	r.scanner = scanner.New(r.prober, cfg.Scan.Concurrency, r.logger)
	r.scanner.SetObserver(metrics.Recorder{})

	return r, nil
}

// RunID returns the identifier attached to logs and reports of this run.
func (r *Runner) RunID() string {
	return r.runID
}

// Scan probes hosts together with the configured extra hosts and returns the
// grouped report.
func (r *Runner) Scan(ctx context.Context, hosts []string) *scanner.Report {
	hosts = hostlist.Merge(hosts, r.config.Hosts...)

	start := r.now()
	r.logger.Info("starting certificate scan",
		zap.Int("hosts", len(hosts)),
		zap.Int("concurrency", r.scanner.Concurrency()),
		zap.Int("port", r.config.Scan.Port),
		zap.Duration("timeout", r.config.Scan.Timeout),
		zap.Stringer("build", version.GetInfo()),
	)

	report := r.scanner.ProbeAll(ctx, hosts)
	if r.config.Output.Sort {
		report = report.Sorted()
	}

	finished := r.now()
	metrics.RecordRun(len(hosts), finished, version.GetVersion())

	r.logger.Info("scan complete",
		zap.Duration("duration", finished.Sub(start)),
		zap.Int("valid", report.Count(scanner.StatusValid)),
		zap.Int("invalid", report.Count(scanner.StatusInvalid)),
		zap.Int("unavailable", report.Count(scanner.StatusUnavailable)),
	)

	// Log every unreachable host
	for _, e := range report.Entries(scanner.StatusUnavailable) {
		r.logger.Warn("certificate unavailable",
			zap.String("hostname", e.Hostname),
			zap.String("reason", e.Reason),
			zap.Error(e.Err),
		)
	}

	return report
}

// Run scans hosts, renders the report to w and exports metrics when a
// textfile is configured.
func (r *Runner) Run(ctx context.Context, hosts []string, w io.Writer) error {
	report := r.Scan(ctx, hosts)

	meta := render.Meta{
		RunID:       r.runID,
		GeneratedAt: r.now(),
		Version:     version.GetVersion(),
	}
	if err := render.Write(w, r.format, report, meta); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if path := r.config.Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			return err
		}
		r.logger.Debug("metrics written", zap.String("path", path))
	}

	return nil
}

// RunPaths reads hosts from inputPath and writes the report to outputPath.
// Either path may be "-" for stdin or stdout.
func (r *Runner) RunPaths(ctx context.Context, inputPath, outputPath string) (err error) {
	in, err := hostlist.Open(inputPath)
	if err != nil {
		return err
	}
	hosts, err := hostlist.Read(in)
	err = multierr.Append(err, in.Close())
	if err != nil {
		return err
	}

	out, err := hostlist.Create(outputPath)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(out))

	return r.Run(ctx, hosts, out)
}
