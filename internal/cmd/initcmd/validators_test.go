package initcmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateHostname(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		wantErr  bool
	}{
		{"valid simple", "example.com", false},
		{"valid subdomain", "api.example.com", false},
		{"valid with hyphen", "my-api.example.com", false},
		{"valid ip-like", "192.168.1.1", false},
		{"valid with port", "api.example.com:8443", false},
		{"valid ipv6 with port", "[::1]:443", false},
		{"empty (skip)", "", false},
		{"with spaces", "api example.com", true},
		{"with protocol", "https://example.com", true},
		{"with invalid char", "api@example.com", true},
		{"wildcard", "*.example.com", true},
		{"bad port", "api.example.com:99999", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHostname(tt.hostname)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHostname(%q) error = %v, wantErr %v", tt.hostname, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		name    string
		portStr string
		wantErr bool
	}{
		{"valid 443", "443", false},
		{"valid 8443", "8443", false},
		{"valid 1", "1", false},
		{"valid 65535", "65535", false},
		{"empty (default)", "", false},
		{"zero", "0", true},
		{"negative", "-1", true},
		{"too high", "65536", true},
		{"not a number", "abc", true},
		{"float", "443.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePort(tt.portStr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePort(%q) error = %v, wantErr %v", tt.portStr, err, tt.wantErr)
			}
		})
	}
}

func TestValidateConcurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty (default)", "", false},
		{"zero (auto)", "0", false},
		{"valid", "32", false},
		{"max", "1024", false},
		{"too high", "1025", true},
		{"negative", "-4", true},
		{"not a number", "lots", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConcurrency(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConcurrency(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty (none)", "", false},
		{"zero", "0", false},
		{"zero seconds", "0s", false},
		{"seconds", "10s", false},
		{"minutes", "1m", false},
		{"negative", "-5s", true},
		{"no unit", "10", true},
		{"garbage", "soon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeout(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimeout(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative", "./cw-certscan.yaml", false},
		{"valid current dir", "cw-certscan.yaml", false},
		{"missing dir is created later", filepath.Join(t.TempDir(), "new", "cw-certscan.yaml"), false},
		{"parent is a file", filepath.Join(file, "cw-certscan.yaml"), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfigPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfigPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOptionalPath(t *testing.T) {
	if err := ValidateOptionalPath(""); err != nil {
		t.Errorf("ValidateOptionalPath(\"\") error = %v, want nil", err)
	}
	if err := ValidateOptionalPath("./certscan.prom"); err != nil {
		t.Errorf("ValidateOptionalPath() error = %v, want nil", err)
	}
}
