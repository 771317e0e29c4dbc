package internal

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() {
		SetLogOutput(os.Stderr)
		SetLogLevel(LogLevelInfo)
	})
	return &buf
}

func TestLogLevels(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel(LogLevelInfo)

	LogDebug("hidden %s", "debug")
	LogInfo("visible info")
	LogWarn("visible warn")
	LogError("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden debug") {
		t.Error("debug message logged at info level")
	}
	for _, want := range []string{"[INFO] visible info", "[WARN] visible warn", "[ERROR] visible error"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetVerbose(t *testing.T) {
	buf := captureLog(t)

	SetVerbose(true)
	LogDebug("now visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Error("verbose mode should log debug messages")
	}

	buf.Reset()
	SetVerbose(false)
	LogDebug("hidden again")
	if strings.Contains(buf.String(), "hidden again") {
		t.Error("debug message logged after verbose disabled")
	}
}
