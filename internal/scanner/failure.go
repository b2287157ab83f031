package scanner

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"os"
	"strings"
	"syscall"
)

// Failure reasons attached to Invalid and Unavailable results.
const (
	ReasonUntrusted          = "untrusted"
	ReasonHostnameMismatch   = "hostname_mismatch"
	ReasonExpired            = "expired"
	ReasonInvalidCertificate = "invalid_certificate"

	ReasonDNS         = "dns"
	ReasonRefused     = "refused"
	ReasonTimeout     = "timeout"
	ReasonReset       = "reset"
	ReasonUnreachable = "unreachable"
	ReasonProtocol    = "protocol"
	ReasonCanceled    = "canceled"
	ReasonUnknown     = "unknown"
)

// CategorizeFailure determines the failure reason for a probe error.
// This groups unreachable and untrusted hosts by root cause for logs and metrics.
// A nil error has no reason.
func CategorizeFailure(err error) string {
	if err == nil {
		return ""
	}

	if reason := categorizeVerification(err); reason != "" {
		return reason
	}
	if reason := categorizeTransport(err); reason != "" {
		return reason
	}

	// Fall back to the message for errors that lost their type on the way up
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "no such host"),
		strings.Contains(lower, "server misbehaving"):
		return ReasonDNS
	case strings.Contains(lower, "connection refused"):
		return ReasonRefused
	case strings.Contains(lower, "timeout"),
		strings.Contains(lower, "timed out"):
		return ReasonTimeout
	case strings.Contains(lower, "connection reset"),
		strings.Contains(lower, "broken pipe"),
		strings.Contains(lower, "eof"):
		return ReasonReset
	case strings.Contains(lower, "unreachable"):
		return ReasonUnreachable
	case strings.Contains(lower, "tls:"),
		strings.Contains(lower, "handshake"),
		strings.Contains(lower, "protocol version"):
		return ReasonProtocol
	}

	return ReasonUnknown
}

func categorizeVerification(err error) string {
	var (
		hostnameErr x509.HostnameError
		invalidErr  x509.CertificateInvalidError
		unknownAuth x509.UnknownAuthorityError
		rootsErr    x509.SystemRootsError
	)

	switch {
	case errors.As(err, &hostnameErr):
		return ReasonHostnameMismatch
	case errors.As(err, &invalidErr):
		if invalidErr.Reason == x509.Expired {
			return ReasonExpired
		}
		return ReasonInvalidCertificate
	case errors.As(err, &unknownAuth), errors.As(err, &rootsErr):
		return ReasonUntrusted
	}
	return ""
}

func categorizeTransport(err error) string {
	var (
		dnsErr    *net.DNSError
		recordErr tls.RecordHeaderError
		netErr    net.Error
	)

	switch {
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.As(err, &dnsErr):
		return ReasonDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return ReasonRefused
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE):
		return ReasonReset
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return ReasonUnreachable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ReasonTimeout
	case errors.As(err, &recordErr), errors.Is(err, errNoPeerCertificates):
		return ReasonProtocol
	}
	return ""
}
