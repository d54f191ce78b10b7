package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Error("list %s failed", "/home/u")
	Warn("slow")
	Debug("hidden")
	SetDebug(true)
	Debug("stale response gen=%d", 3)
	SetDebug(false)

	got := buf.String()
	for _, want := range []string{"ERROR: list /home/u failed", "WARN: slow", "DEBUG: stale response gen=3"} {
		if !strings.Contains(got, want) {
			t.Errorf("log output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "hidden") {
		t.Error("Debug line written while debug was off")
	}
}

func TestDisable(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Disable()
	Error("nope")
	Enable()

	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestInitRotatesLargeLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "trek.log")
	if err := os.WriteFile(logPath, bytes.Repeat([]byte("x"), maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	if _, err := os.Stat(logPath + ".old"); err != nil {
		t.Errorf("rotated log missing: %v", err)
	}
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("new log missing: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("new log has %d bytes, want 0", info.Size())
	}
}
