package scanner

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// DialContextFunc establishes the TCP connection for a probe attempt.
type DialContextFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Option configures a Prober.
type Option func(*Prober)

// WithPort sets the port used for hostnames without an explicit port.
func WithPort(port int) Option {
	return func(p *Prober) {
		if port > 0 {
			p.port = port
		}
	}
}

// WithTimeout bounds each attempt (dial and handshake). Zero leaves the
// platform defaults in charge.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

// WithRootCAs replaces the system roots used for the verified attempt.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(p *Prober) {
		p.roots = pool
	}
}

// WithDialContext routes TCP connections through fn.
func WithDialContext(fn DialContextFunc) Option {
	return func(p *Prober) {
		p.dial = fn
	}
}

// WithLogger sets the logger used for per-probe debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prober) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Prober retrieves the leaf certificate of a single host.
// Fields are ordered for optimal memory alignment.
type Prober struct {
	dial    DialContextFunc
	roots   *x509.CertPool
	logger  *zap.Logger
	timeout time.Duration
	port    int
}

// NewProber creates a Prober. Without options it probes port 443 against the
// system roots with no timeout.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		port:   DefaultPort,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.dial == nil {
		p.dial = (&net.Dialer{}).DialContext
	}
	return p
}

// Probe connects to hostname with verification enabled. If the certificate
// fails verification it retries once with verification disabled so the
// certificate can still be reported. Every failure is encoded in the result.
func (p *Prober) Probe(ctx context.Context, hostname string) ProbeResult {
	start := time.Now()
	result := ProbeResult{Hostname: hostname}

	serverName, addr := p.target(hostname)

	leaf, err := p.fetchLeaf(ctx, serverName, addr, true)
	switch {
	case err == nil:
		result.Status = StatusValid
		result.Certificate = leaf

	case KindOf(err) == KindVerification:
		p.logger.Debug("verification failed, retrying without verification",
			zap.String("hostname", hostname),
			zap.Error(err),
		)
		leaf, retryErr := p.fetchLeaf(ctx, serverName, addr, false)
		if retryErr != nil {
			result.Status = StatusUnavailable
			result.Err = &ProbeError{
				Kind: KindDegradedRetry,
				Op:   "retry without verification",
				Err:  retryErr,
			}
			break
		}
		result.Status = StatusInvalid
		result.Certificate = leaf
		result.Err = err

	default:
		result.Status = StatusUnavailable
		result.Err = err
	}

	result.Reason = CategorizeFailure(result.Err)
	result.Duration = time.Since(start)

	p.logger.Debug("probe complete",
		zap.String("hostname", hostname),
		zap.Stringer("status", result.Status),
		zap.String("reason", result.Reason),
		zap.Duration("duration", result.Duration),
		zap.Error(result.Err),
	)

	return result
}

// fetchLeaf runs one connection attempt and returns the DER leaf certificate.
func (p *Prober) fetchLeaf(ctx context.Context, serverName, addr string, verify bool) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	conn, err := p.dial(ctx, "tcp", addr)
	if err != nil {
		return nil, &ProbeError{Kind: KindTransport, Op: "dial", Err: err}
	}

	tlsConn := tls.Client(conn, p.tlsConfig(serverName, verify))
	defer tlsConn.Close()

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		kind := KindTransport
		if verify && isVerificationError(err) {
			kind = KindVerification
		}
		return nil, &ProbeError{Kind: kind, Op: "handshake", Err: err}
	}

	state := tlsConn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, &ProbeError{Kind: KindTransport, Op: "handshake", Err: errNoPeerCertificates}
	}

	return state.PeerCertificates[0].Raw, nil
}

func (p *Prober) tlsConfig(serverName string, verify bool) *tls.Config {
	if !verify {
		return &tls.Config{
			ServerName:         serverName,
			InsecureSkipVerify: true, //nolint:gosec // degraded retry only fetches the certificate for reporting
		}
	}
	return &tls.Config{
		ServerName: serverName,
		RootCAs:    p.roots,
	}
}

// target splits an input entry into the TLS server name and the dial address.
// Entries without a numeric port use the prober's default port.
func (p *Prober) target(hostname string) (serverName, addr string) {
	if host, port, err := net.SplitHostPort(hostname); err == nil {
		if n, convErr := strconv.Atoi(port); convErr == nil && n > 0 && n <= 65535 {
			return host, hostname
		}
	}
	return hostname, net.JoinHostPort(hostname, strconv.Itoa(p.port))
}
