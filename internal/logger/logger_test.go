package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// capture redirects stdout for the duration of fn and returns what was written.
func capture(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestLevels_WriteTagAndMessage(t *testing.T) {
	out := capture(t, func() {
		Info("TAG", "info message")
		Success("TAG", "success message")
		Warn("TAG", "warn message")
		Error("TAG", "error message")
	})
	for _, want := range []string{"[TAG]", "info message", "success message", "warn message", "error message"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestBanner_VersionFallback(t *testing.T) {
	out := capture(t, func() {
		Banner("v1.0.0")
		Banner("")
	})
	if !strings.Contains(out, "v1.0.0") {
		t.Error("banner missing version")
	}
	if !strings.Contains(out, "dev") {
		t.Error("empty version should fall back to dev")
	}
}

func TestSectionStatsServer_NoPanic(t *testing.T) {
	out := capture(t, func() {
		Section("Probes")
		Stats("pages", 42)
		Server("127.0.0.1:13380")
	})
	for _, want := range []string{"Probes", "42", "127.0.0.1:13380"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
