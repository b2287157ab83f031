package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.Version != Version {
		t.Errorf("Version = %v, want %v", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %v, want %v", info.GoVersion, runtime.Version())
	}
	if GetVersion() != Version {
		t.Errorf("GetVersion() = %v, want %v", GetVersion(), Version)
	}
}

func TestInfo_String(t *testing.T) {
	s := Info{Version: "1.2.3", GitCommit: "abc123", BuildDate: "2026-01-01", GoVersion: "go1.24", OS: "linux", Arch: "amd64"}.String()
	for _, want := range []string{"cw-certscan 1.2.3", "abc123", "linux/amd64"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
