// Package certinfo decodes the opaque certificate bytes carried by a scan
// report into something a human or a downstream tool can read.
package certinfo

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	cfsslinfo "github.com/cloudflare/cfssl/certinfo"
	"github.com/cloudflare/cfssl/crypto/pkcs7"
	"github.com/grantae/certinfo"
)

var (
	// ErrEmpty indicates there were no certificate bytes to decode.
	ErrEmpty = errors.New("certinfo: empty certificate")

	// ErrInvalidBlockType indicates a PEM block that is not a certificate.
	ErrInvalidBlockType = errors.New("certinfo: invalid block type")

	// ErrParseCertificate indicates the bytes are neither DER, PEM nor PKCS#7.
	ErrParseCertificate = errors.New("certinfo: failed to parse certificate")

	// ErrNoCertificatesInPKCS7 indicates a PKCS#7 bundle with no certificates.
	ErrNoCertificatesInPKCS7 = errors.New("certinfo: no certificates found in PKCS7 data")
)

const certBlockType = "CERTIFICATE"

// Parse decodes a single certificate. DER is expected; PEM and the first
// certificate of a PKCS#7 bundle are accepted too.
func Parse(data []byte) (*x509.Certificate, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if block, _ := pem.Decode(data); block != nil {
		if block.Type != certBlockType {
			return nil, ErrInvalidBlockType
		}
		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	p, perr := pkcs7.ParsePKCS7(data)
	if perr != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS7
	}

	return p.Content.SignedData.Certificates[0], nil
}

// Dump renders the certificate in the familiar openssl x509 -text layout.
func Dump(data []byte) (string, error) {
	cert, err := Parse(data)
	if err != nil {
		return "", err
	}

	text, err := certinfo.CertificateText(cert)
	if err != nil {
		return "", fmt.Errorf("failed to render certificate text: %w", err)
	}
	return text, nil
}

// Describe returns the structured view used by the machine readable reports.
func Describe(data []byte) (*cfsslinfo.Certificate, error) {
	cert, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfsslinfo.ParseCertificate(cert), nil
}
