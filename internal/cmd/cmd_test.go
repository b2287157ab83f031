package cmd

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "CertWatch Certificate Scanner\n") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestScanCommand_Unavailable(t *testing.T) {
	// grab a free port and close it so the probe is refused
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	dir := t.TempDir()
	input := filepath.Join(dir, "hosts.txt")
	output := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(input, []byte("# local\n"+addr+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "scan", "--timeout", "2s", input, output); err != nil {
		t.Fatalf("scan error = %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := "*** UNAVAILABLE ***\n\nHostname: " + addr + "\n\n"
	if string(got) != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestScanCommand_TooManyArgs(t *testing.T) {
	if _, err := execute(t, "scan", "a", "b", "c"); err == nil {
		t.Error("expected an error for three positional arguments")
	}
}
