package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDisabledIsNoop(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(false)

	// None of these may panic while the logger is off.
	Log("hello %d", 1)
	LogTiming("op", time.Millisecond)
	LogIf(true, "cond")
	LogEnterExit("fn")()
	if Enabled() {
		t.Fatal("expected debug to be disabled")
	}
}

func TestLogWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := SetOutput(path); err != nil {
		t.Fatalf("SetOutput: %v", err)
	}
	SetEnabled(true)
	defer SetEnabled(false)

	Log("loaded %d lessons", 42)
	LogIf(false, "should not appear")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "loaded 42 lessons") {
		t.Errorf("expected message in log, got %q", out)
	}
	if strings.Contains(out, "should not appear") {
		t.Errorf("LogIf(false) wrote a message: %q", out)
	}
}
