package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Logger().Debug("assembled", "nnz", 42)
	if !strings.Contains(buf.String(), "nnz=42") {
		t.Errorf("expected debug output, got %q", buf.String())
	}

	buf.Reset()
	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Logger().Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
	_ = SetLevel("warn")
}

func TestSetLevel_Rejects(t *testing.T) {
	if err := SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
