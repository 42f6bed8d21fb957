package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range testCases {
		if got := parseLevel(tc.input); got != tc.expected {
			t.Errorf("parseLevel(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestWeekKeyFormat(t *testing.T) {
	ts := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	if got := weekKey(ts); got != "2026-W36" {
		t.Errorf("Expected 2026-W36, got %q", got)
	}
}

func TestRotatingWriterCreatesWeeklyFile(t *testing.T) {
	dir := t.TempDir()
	rw := NewRotatingWriter(dir, 4, 0)
	defer rw.Close()

	if _, err := rw.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Expected write to succeed, got %v", err)
	}

	expected := filepath.Join(dir, "api-"+weekKey(time.Now())+".log")
	content, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("Expected weekly log file at %s, got %v", expected, err)
	}
	if string(content) != "hello\n" {
		t.Errorf("Expected written content, got %q", content)
	}
}

func TestRotatingWriterRotatesOnSize(t *testing.T) {
	dir := t.TempDir()
	rw := NewRotatingWriter(dir, 4, 10)
	defer rw.Close()

	// Two writes whose total exceeds the limit must land in two files.
	if _, err := rw.Write([]byte("123456789\n")); err != nil {
		t.Fatalf("Expected first write to succeed, got %v", err)
	}
	if _, err := rw.Write([]byte("overflow\n")); err != nil {
		t.Fatalf("Expected second write to succeed, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Expected readable log dir, got %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 {
		t.Fatalf("Expected 2 log files after size rotation, got %v", names)
	}

	week := weekKey(time.Now())
	foundSequence := false
	for _, name := range names {
		if strings.HasPrefix(name, "api-"+week+".1") {
			foundSequence = true
		}
	}
	if !foundSequence {
		t.Errorf("Expected a sequenced overflow file, got %v", names)
	}
}

func TestPackageLevelLoggingWithoutInit(t *testing.T) {
	// Must not panic before InitLogger runs; early startup logs through
	// the stderr fallback.
	saved := DefaultLoggingService
	DefaultLoggingService = nil
	defer func() { DefaultLoggingService = saved }()

	Info("info without init")
	Warn("warn without init")
	Error("error without init")
	Debug("debug without init")
}

func TestInitLogger(t *testing.T) {
	saved := DefaultLoggingService
	defer func() { DefaultLoggingService = saved }()

	InitLogger(t.TempDir(), "debug", 1, 1024*1024)

	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		t.Fatal("Expected InitLogger to set the global service")
	}
}
