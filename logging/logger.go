package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingWriter appends to a per-week log file, starts a numbered file when
// the current one exceeds maxFileSize, and prunes files older than the
// retention window.
type RotatingWriter struct {
	logDir      string
	retention   time.Duration
	maxFileSize int64

	mu          sync.Mutex
	currentFile *os.File
	currentWeek string
	currentSize int64
	sequence    int
	lastCleanup time.Time
}

// NewRotatingWriter creates a rotating writer. The directory is created on
// first write if needed.
func NewRotatingWriter(logDir string, retentionWeeks int, maxFileSize int64) *RotatingWriter {
	return &RotatingWriter{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
	}
}

// weekKey returns the ISO week key in YYYY-Www format.
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (rw *RotatingWriter) fileName(week string, seq int) string {
	if seq == 0 {
		return fmt.Sprintf("api-%s.log", week)
	}
	return fmt.Sprintf("api-%s.%d.log", week, seq)
}

// rotate opens the target file for the given week. Caller holds the lock.
func (rw *RotatingWriter) rotate(week string) error {
	if rw.currentFile != nil {
		if err := rw.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "logging: close log file: %v\n", err)
		}
		rw.currentFile = nil
	}

	if week != rw.currentWeek {
		rw.sequence = 0
	} else {
		rw.sequence++
	}

	if err := os.MkdirAll(rw.logDir, 0750); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(rw.logDir, rw.fileName(week, rw.sequence))
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("stat log file %s: %w", path, err)
	}

	rw.currentFile = file
	rw.currentWeek = week
	rw.currentSize = info.Size()

	return nil
}

// Write implements io.Writer.
func (rw *RotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	week := weekKey(time.Now())
	needRotate := rw.currentFile == nil ||
		week != rw.currentWeek ||
		(rw.maxFileSize > 0 && rw.currentSize+int64(len(p)) > rw.maxFileSize)

	if needRotate {
		if err := rw.rotate(week); err != nil {
			return 0, err
		}
	}

	n, err := rw.currentFile.Write(p)
	rw.currentSize += int64(n)

	if time.Since(rw.lastCleanup) > 24*time.Hour {
		rw.lastCleanup = time.Now()
		go rw.cleanup()
	}

	return n, err
}

// cleanup removes log files older than the retention window.
func (rw *RotatingWriter) cleanup() {
	entries, err := os.ReadDir(rw.logDir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-rw.retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "api-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rw.logDir, entry.Name())); err != nil {
				fmt.Fprintf(os.Stderr, "logging: remove old log file %s: %v\n", entry.Name(), err)
			}
		}
	}
}

// Close closes the current log file.
func (rw *RotatingWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.currentFile == nil {
		return nil
	}

	err := rw.currentFile.Close()
	rw.currentFile = nil
	return err
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger builds the slog logger writing JSON records to both stdout and
// the rotating file.
func SetupLogger(logDir, level string, retentionWeeks int, maxFileSize int64) *slog.Logger {
	writer := io.MultiWriter(os.Stdout, NewRotatingWriter(logDir, retentionWeeks, maxFileSize))

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return slog.New(handler)
}
