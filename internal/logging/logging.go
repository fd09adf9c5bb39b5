package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	envLogLevel     = "BUDGETWISE_LOG_LEVEL"
	envLogFormat    = "BUDGETWISE_LOG_FORMAT"
	envLogRetention = "BUDGETWISE_LOG_RETENTION_DAYS"
)

const (
	fileStem         = "budgetwise"
	fileDateLayout   = "2006-01-02"
	defaultRetention = 7
)

// Options configure the server logger.
type Options struct {
	// Dir is the directory for the rolling log files.
	Dir string
	// Level is the minimum level, unless BUDGETWISE_LOG_LEVEL overrides it.
	Level slog.Level
	// RetentionDays bounds how long daily files are kept. Zero means the
	// default; BUDGETWISE_LOG_RETENTION_DAYS overrides either.
	RetentionDays int
}

// RollingFile appends to one file per calendar day, named
// budgetwise-YYYY-MM-DD.log, and deletes files older than the retention
// window on each roll.
type RollingFile struct {
	dir       string
	retention int

	mu   sync.Mutex
	day  string
	file *os.File
}

// OpenRollingFile creates the log directory and opens today's file.
func OpenRollingFile(dir string, retentionDays int) (*RollingFile, error) {
	if retentionDays <= 0 {
		retentionDays = defaultRetention
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	rf := &RollingFile{dir: dir, retention: retentionDays}
	if err := rf.roll(time.Now()); err != nil {
		return nil, err
	}
	return rf, nil
}

// Write implements io.Writer, rolling to a new file when the day changes.
func (rf *RollingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if err := rf.roll(time.Now()); err != nil {
		return 0, err
	}
	return rf.file.Write(p)
}

// Close closes the current day's file.
func (rf *RollingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.file == nil {
		return nil
	}
	return rf.file.Close()
}

func (rf *RollingFile) roll(now time.Time) error {
	day := now.Format(fileDateLayout)
	if day == rf.day && rf.file != nil {
		return nil
	}
	if rf.file != nil {
		_ = rf.file.Close()
	}
	file, err := os.OpenFile(rf.pathFor(day), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	rf.day = day
	rf.file = file
	rf.prune(now)
	return nil
}

func (rf *RollingFile) pathFor(day string) string {
	return filepath.Join(rf.dir, fileStem+"-"+day+".log")
}

func (rf *RollingFile) prune(now time.Time) {
	entries, err := os.ReadDir(rf.dir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -rf.retention)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, fileStem+"-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		datePart := strings.TrimSuffix(strings.TrimPrefix(name, fileStem+"-"), ".log")
		day, err := time.Parse(fileDateLayout, datePart)
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			_ = os.Remove(filepath.Join(rf.dir, name))
		}
	}
}

// New builds the process logger, writing to stdout and a rolling daily
// file, and installs it as the slog default.
func New(opts Options) (*slog.Logger, *RollingFile, error) {
	file, err := OpenRollingFile(opts.Dir, resolveRetention(opts.RetentionDays))
	if err != nil {
		return nil, nil, err
	}
	out := io.MultiWriter(os.Stdout, file)
	handler := newHandler(out, resolveLevel(opts.Level))
	logger := slog.New(handler).With("service", fileStem)
	slog.SetDefault(logger)
	return logger, file, nil
}

func resolveRetention(fallback int) int {
	if value := strings.TrimSpace(os.Getenv(envLogRetention)); value != "" {
		if days, err := strconv.Atoi(value); err == nil && days > 0 {
			return days
		}
	}
	return fallback
}

func resolveLevel(fallback slog.Level) slog.Level {
	value := strings.TrimSpace(os.Getenv(envLogLevel))
	if value == "" {
		return fallback
	}

	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		if i, err := strconv.Atoi(value); err == nil {
			return slog.Level(i)
		}
		return fallback
	}
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	format := strings.ToLower(strings.TrimSpace(os.Getenv(envLogFormat)))
	if format == "json" {
		return slog.NewJSONHandler(w, options)
	}
	return slog.NewTextHandler(w, options)
}
