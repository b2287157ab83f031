package hostlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "example.com", want: []string{"example.com"}},
		{name: "crlf and spaces", input: " a.example \r\nb.example\r\n", want: []string{"a.example", "b.example"}},
		{name: "blank lines", input: "a.example\n\n\n  \nb.example\n", want: []string{"a.example", "b.example"}},
		{name: "comments", input: "# prod\na.example\n  # staging\nb.example:8443\n", want: []string{"a.example", "b.example:8443"}},
		{name: "malformed kept", input: "not a host!\n", want: []string{"not a host!"}},
		{name: "duplicates kept", input: "a.example\na.example\n", want: []string{"a.example", "a.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Read() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Read()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOpenAndCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hosts.txt")
	if err := os.WriteFile(path, []byte("a.example\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	hosts, err := Read(rc)
	_ = rc.Close()
	if err != nil || len(hosts) != 1 || hosts[0] != "a.example" {
		t.Errorf("Read(Open()) = %q, %v", hosts, err)
	}

	if _, err := Open(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Open() of a missing file should fail")
	}

	rc, err = Open(Stdio)
	if err != nil {
		t.Fatalf("Open(-) error = %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("closing stdin wrapper: %v", err)
	}

	out := filepath.Join(dir, "report.txt")
	wc, err := Create(out)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := wc.Write([]byte("ok")); err != nil {
		t.Fatal(err)
	}
	if err := wc.Close(); err != nil {
		t.Fatal(err)
	}
	if b, _ := os.ReadFile(out); string(b) != "ok" {
		t.Errorf("output = %q, want %q", b, "ok")
	}

	wc, err = Create("")
	if err != nil {
		t.Fatalf("Create(\"\") error = %v", err)
	}
	if err := wc.Close(); err != nil {
		t.Errorf("closing stdout wrapper: %v", err)
	}
}

func TestMerge(t *testing.T) {
	got := Merge([]string{"a.example"}, "", " b.example ", "  ")
	if len(got) != 2 || got[1] != "b.example" {
		t.Errorf("Merge() = %q", got)
	}
}
