package browser

import (
	"runtime"
	"strings"
	"testing"
)

func TestOpenRejectsNonHTTP(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"", true},
	}

	for _, tt := range tests {
		err := Open(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("Open(%q): expected error, got nil", tt.url)
		}
		// A valid URL may still fail to launch on a headless machine.
	}
}

func TestFileURL(t *testing.T) {
	if _, err := FileURL(""); err == nil {
		t.Error("expected error for empty path")
	}

	got, err := FileURL("chart.html")
	if err != nil {
		t.Fatalf("FileURL: %v", err)
	}
	if !strings.HasPrefix(got, "file://") {
		t.Errorf("FileURL = %q, want file:// prefix", got)
	}
	if !strings.HasSuffix(got, "/chart.html") {
		t.Errorf("FileURL = %q, want it to end in /chart.html", got)
	}

	if runtime.GOOS != "windows" {
		got, err = FileURL("/tmp/my charts/a.html")
		if err != nil {
			t.Fatalf("FileURL: %v", err)
		}
		if got != "file:///tmp/my%20charts/a.html" {
			t.Errorf("FileURL = %q", got)
		}
	}
}
