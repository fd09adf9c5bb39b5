package budgetwise

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestCore creates a temporary database for testing and returns a
// Core instance. The caller should defer cleanup() to remove the temp file.
func setupTestCore(t *testing.T) (*Core, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "budgetwise-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	core, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open test db: %v", err)
	}

	cleanup := func() {
		core.Close()
		os.RemoveAll(tmpDir)
	}

	return core, cleanup
}

// testTransaction records a transaction, failing the test on error.
func testTransaction(t *testing.T, core *Core, description string, amount float64, category, txnType string) int64 {
	t.Helper()
	id, err := core.AddTransaction(AddTransactionRequest{
		Description: description,
		Amount:      NewAmount(amount),
		Category:    category,
		Date:        "2026-08-01",
		Type:        txnType,
	})
	if err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return id
}

// assertContains fails the test when s does not contain substr.
func assertContains(t *testing.T, s, substr, msg string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s: string %q does not contain %q", msg, s, substr)
	}
}

// assertAmount fails the test when got does not equal want exactly.
func assertAmount(t *testing.T, got Amount, want float64, msg string) {
	t.Helper()
	if !got.Equal(NewAmount(want).Decimal) {
		t.Errorf("%s: got %s, want %v", msg, got.String(), want)
	}
}
