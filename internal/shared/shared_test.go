package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  log.Level
	}{
		{name: "empty defaults to info", input: "", want: log.InfoLevel},
		{name: "debug", input: "debug", want: log.DebugLevel},
		{name: "mixed case", input: " WARN ", want: log.WarnLevel},
		{name: "unknown defaults to info", input: "chatty", want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggers(t *testing.T) {
	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "tracker")
		logger.Info("hello")

		if !strings.Contains(buf.String(), "component=tracker") {
			t.Errorf("expected child logger fields, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "tui.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("written to file")

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("log file should exist: %v", err)
		}
		if !strings.Contains(string(content), "written to file") {
			t.Error("expected log line in file")
		}
	})

	t.Run("GenerateID", func(t *testing.T) {
		a, b := GenerateID(), GenerateID()
		if a == b || len(a) != 36 {
			t.Errorf("expected distinct uuids, got %q and %q", a, b)
		}
	})
}
