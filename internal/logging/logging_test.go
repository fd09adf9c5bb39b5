package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRollingFileWrite(t *testing.T) {
	dir := t.TempDir()
	rf, err := OpenRollingFile(dir, 0)
	if err != nil {
		t.Fatalf("OpenRollingFile: %v", err)
	}
	defer rf.Close()

	if _, err := rf.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	path := filepath.Join(dir, "budgetwise-"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log content missing")
	}
}

func TestRollingFilePrune(t *testing.T) {
	dir := t.TempDir()

	oldDay := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	recentDay := time.Now().Format("2006-01-02")
	oldPath := filepath.Join(dir, "budgetwise-"+oldDay+".log")
	recentPath := filepath.Join(dir, "budgetwise-"+recentDay+".log")
	if err := os.WriteFile(oldPath, []byte("old"), 0o644); err != nil {
		t.Fatalf("write old: %v", err)
	}
	if err := os.WriteFile(recentPath, []byte("recent"), 0o644); err != nil {
		t.Fatalf("write recent: %v", err)
	}
	// Unrelated files are never pruned.
	otherPath := filepath.Join(dir, "notes-"+oldDay+".log")
	if err := os.WriteFile(otherPath, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}

	rf, err := OpenRollingFile(dir, 1)
	if err != nil {
		t.Fatalf("OpenRollingFile: %v", err)
	}
	defer rf.Close()

	if _, err := os.Stat(oldPath); err == nil {
		t.Fatalf("expected old log to be removed")
	}
	if _, err := os.Stat(recentPath); err != nil {
		t.Fatalf("expected recent log to remain: %v", err)
	}
	if _, err := os.Stat(otherPath); err != nil {
		t.Fatalf("expected unrelated file to remain: %v", err)
	}
}

func TestRollingFileCloseNil(t *testing.T) {
	rf := &RollingFile{}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNew(t *testing.T) {
	t.Setenv(envLogLevel, "")
	t.Setenv(envLogFormat, "")
	dir := t.TempDir()
	logger, rf, err := New(Options{Dir: dir, Level: slog.LevelInfo})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger == nil || rf == nil {
		t.Fatalf("expected logger and rolling file")
	}

	logger.Info("started")
	path := filepath.Join(dir, "budgetwise-"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "started") || !strings.Contains(string(data), "service=budgetwise") {
		t.Fatalf("unexpected log content: %q", string(data))
	}
	_ = rf.Close()
}

func TestResolveRetentionFromEnv(t *testing.T) {
	t.Setenv(envLogRetention, "30")
	if got := resolveRetention(7); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	t.Setenv(envLogRetention, "nope")
	if got := resolveRetention(7); got != 7 {
		t.Fatalf("expected fallback, got %d", got)
	}
	t.Setenv(envLogRetention, "-1")
	if got := resolveRetention(7); got != 7 {
		t.Fatalf("expected fallback for negative value, got %d", got)
	}
}

func TestResolveLevelFromEnv(t *testing.T) {
	t.Setenv(envLogLevel, "debug")
	if got := resolveLevel(slog.LevelInfo); got != slog.LevelDebug {
		t.Fatalf("expected debug, got %v", got)
	}
	t.Setenv(envLogLevel, "nonsense")
	if got := resolveLevel(slog.LevelWarn); got != slog.LevelWarn {
		t.Fatalf("expected fallback, got %v", got)
	}
	t.Setenv(envLogLevel, "8")
	if got := resolveLevel(slog.LevelInfo); got != slog.Level(8) {
		t.Fatalf("expected numeric level, got %v", got)
	}
}
