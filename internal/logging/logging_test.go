package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("resetting simulation", "resolution", 16)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug output should be filtered at info level")
	}
	if !strings.Contains(out, "resolution=16") || !strings.Contains(out, prefix) {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestNewUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
