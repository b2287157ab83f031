package render

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/certwatch-app/cw-certscan/internal/certinfo"
	"github.com/certwatch-app/cw-certscan/internal/scanner"
)

const propertyPrefix = "cw-certscan:"

// CycloneDX writes the report as a CycloneDX 1.6 cryptographic bill of
// materials. Every retrieved certificate becomes a certificate crypto asset;
// unavailable hosts are listed as BOM properties.
func CycloneDX(w io.Writer, report *scanner.Report, meta Meta) error {
	bom := NewBOM(report, meta)
	if err := cdx.NewBOMEncoder(w, cdx.BOMFileFormatJSON).SetPretty(true).Encode(bom); err != nil {
		return fmt.Errorf("failed to encode CycloneDX report: %w", err)
	}
	return nil
}

// NewBOM builds the CycloneDX BOM for report.
func NewBOM(report *scanner.Report, meta Meta) *cdx.BOM {
	serial := meta.RunID
	if _, err := uuid.Parse(serial); err != nil {
		serial = uuid.New().String()
	}

	// the JSON schema does not allow these to be null
	components := []cdx.Component{}
	properties := []cdx.Property{}

	for _, status := range scanner.Statuses() {
		for _, e := range report.Entries(status) {
			if e.Certificate == nil {
				properties = append(properties, cdx.Property{
					Name:  propertyPrefix + "unavailable",
					Value: e.Hostname,
				})
				continue
			}
			if c, ok := certificateComponent(e, status); ok {
				components = append(components, c)
			}
		}
	}

	version := meta.Version
	if version == "" {
		version = "dev"
	}

	return &cdx.BOM{
		JSONSchema:   "https://cyclonedx.org/schema/bom-1.6.schema.json",
		BOMFormat:    cdx.BOMFormat,
		SpecVersion:  cdx.SpecVersion1_6,
		SerialNumber: "urn:uuid:" + serial,
		Version:      1,
		Metadata: &cdx.Metadata{
			Timestamp: meta.GeneratedAt.UTC().Format(time.RFC3339),
			Component: &cdx.Component{
				Type:    cdx.ComponentTypeApplication,
				Name:    "cw-certscan",
				Version: version,
			},
		},
		Components: &components,
		Properties: &properties,
	}
}

func certificateComponent(e scanner.Entry, status scanner.Status) (cdx.Component, bool) {
	cert, err := certinfo.Parse(e.Certificate)
	if err != nil {
		return cdx.Component{}, false
	}

	sum := sha256.Sum256(cert.Raw)
	fingerprint := hex.EncodeToString(sum[:])

	name := cert.Subject.CommonName
	if name == "" {
		name = e.Hostname
	}

	props := []cdx.Property{
		{Name: propertyPrefix + "hostname", Value: e.Hostname},
		{Name: propertyPrefix + "status", Value: status.String()},
	}
	if e.Reason != "" {
		props = append(props, cdx.Property{Name: propertyPrefix + "reason", Value: e.Reason})
	}

	return cdx.Component{
		BOMRef:      "crypto/certificate/" + e.Hostname + "@sha256:" + fingerprint,
		Type:        cdx.ComponentTypeCryptographicAsset,
		Name:        name,
		Description: "TLS leaf certificate presented by " + e.Hostname,
		Version:     cert.SerialNumber.String(),
		Hashes: &[]cdx.Hash{
			{Algorithm: cdx.HashAlgoSHA256, Value: fingerprint},
		},
		CryptoProperties: &cdx.CryptoProperties{
			AssetType: cdx.CryptoAssetTypeCertificate,
			CertificateProperties: &cdx.CertificateProperties{
				SubjectName:       cert.Subject.String(),
				IssuerName:        cert.Issuer.String(),
				NotValidBefore:    cert.NotBefore.UTC().Format(time.RFC3339),
				NotValidAfter:     cert.NotAfter.UTC().Format(time.RFC3339),
				CertificateFormat: "X.509",
			},
		},
		Properties: &props,
	}, true
}
