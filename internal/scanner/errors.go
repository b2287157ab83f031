package scanner

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
)

// ErrorKind tells the prober which path to take after a failed attempt.
type ErrorKind int

const (
	// KindTransport covers every failure to connect or complete a handshake that
	// is not about the presented certificate.
	KindTransport ErrorKind = iota
	// KindVerification is a chain-of-trust, validity or hostname failure.
	KindVerification
	// KindDegradedRetry is a failure of the retry made without verification.
	KindDegradedRetry
)

func (k ErrorKind) String() string {
	switch k {
	case KindVerification:
		return "verification"
	case KindDegradedRetry:
		return "degraded_retry"
	default:
		return "transport"
	}
}

var errNoPeerCertificates = errors.New("no certificates received")

// ProbeError wraps the error of a failed probe attempt with its kind.
type ProbeError struct {
	Err  error
	Op   string
	Kind ErrorKind
}

func (e *ProbeError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost ProbeError in err's chain.
// Errors that carry no kind are transport failures.
func KindOf(err error) ErrorKind {
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindTransport
}

func isVerificationError(err error) bool {
	var (
		verifyErr   *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidErr  x509.CertificateInvalidError
		rootsErr    x509.SystemRootsError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &unknownAuth) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &rootsErr)
}
