// Package scanner retrieves leaf certificates from TLS endpoints and classifies
// each endpoint as valid, invalid or unavailable.
package scanner

import (
	"strings"
	"time"
)

// DefaultPort is the port probed when a hostname carries no explicit port.
const DefaultPort = 443

// Status is the outcome of probing a single host.
type Status int

// Statuses in their declared report order.
const (
	// StatusValid means the handshake succeeded with chain and hostname verification.
	StatusValid Status = iota
	// StatusInvalid means a certificate was only retrievable with verification disabled.
	StatusInvalid
	// StatusUnavailable means no certificate could be retrieved.
	StatusUnavailable

	numStatuses = 3
)

var statusNames = [numStatuses]string{"VALID", "INVALID", "UNAVAILABLE"}

// Statuses returns every status in report order.
func Statuses() []Status {
	return []Status{StatusValid, StatusInvalid, StatusUnavailable}
}

func (s Status) String() string {
	if !s.known() {
		return "UNKNOWN"
	}
	return statusNames[s]
}

// MarshalText encodes the status in lower case for JSON and YAML output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

func (s Status) known() bool {
	return s >= StatusValid && s < numStatuses
}

// ProbeResult is the outcome of probing one hostname.
// Certificate is set if and only if Status is not StatusUnavailable.
// Fields are ordered for optimal memory alignment.
type ProbeResult struct {
	// Err explains an Invalid or Unavailable status; nil when Valid.
	Err         error
	Hostname    string
	Reason      string
	Certificate []byte
	Duration    time.Duration
	Status      Status
}
