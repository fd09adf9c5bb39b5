package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"budgetwise/pkg/budgetwise"
)

func setupRouterWithLogger(t *testing.T, logger *slog.Logger) (http.Handler, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	core, err := budgetwise.OpenWithOptions(budgetwise.Options{DBPath: dbPath, Logger: logger})
	if err != nil {
		t.Fatalf("open core: %v", err)
	}

	router := NewRouter(core, logger)
	cleanup := func() {
		_ = core.Close()
	}

	return router, cleanup
}

func TestAccessLogFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	router, cleanup := setupRouterWithLogger(t, logger)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("User-Agent", "budgetwise-test-agent")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	logs := buf.String()
	for _, field := range []string{
		"msg=request",
		"method=GET",
		"route=/api/transactions",
		"status=200",
		"request_id=",
		"elapsed_ms=",
		"remote=",
		"user_agent=budgetwise-test-agent",
	} {
		if !strings.Contains(logs, field) {
			t.Fatalf("expected %q in access log, got %q", field, logs)
		}
	}
}

func TestAccessLogHealthAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	router, cleanup := setupRouterWithLogger(t, logger)
	defer cleanup()

	rr := doRequest(router, http.MethodGet, "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.Contains(buf.String(), "msg=request") {
		t.Fatalf("health probe should not log at info, got %q", buf.String())
	}

	buf.Reset()
	debugLogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	debugRouter, debugCleanup := setupRouterWithLogger(t, debugLogger)
	defer debugCleanup()

	rr = doRequest(debugRouter, http.MethodGet, "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	logs := buf.String()
	if !strings.Contains(logs, "level=DEBUG") || !strings.Contains(logs, "route=/api/health") {
		t.Fatalf("expected debug level health entry, got %q", logs)
	}
}

func TestAccessLogWarnWithErrorMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	router, cleanup := setupRouterWithLogger(t, logger)
	defer cleanup()

	rr := doRequest(router, http.MethodDelete, "/api/transactions/invalid", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	logs := buf.String()
	if !strings.Contains(logs, "level=WARN") {
		t.Fatalf("expected warn level log, got %q", logs)
	}
	if !strings.Contains(logs, "status=400") {
		t.Fatalf("expected status=400 in log, got %q", logs)
	}
	if !strings.Contains(logs, "error_message=\"invalid id\"") {
		t.Fatalf("expected error message in log, got %q", logs)
	}
}

func TestAccessLogCarriesAdvisoryFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	router, cleanup := setupRouterWithLogger(t, logger)
	defer cleanup()

	rr := doRequest(router, http.MethodPost, "/api/insights", map[string]any{
		"query": "hello there",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	logs := buf.String()
	if !strings.Contains(logs, "intent=greeting") {
		t.Fatalf("expected intent on the access log, got %q", logs)
	}
	if !strings.Contains(logs, "advisory_category=General") {
		t.Fatalf("expected advisory category on the access log, got %q", logs)
	}
	if !strings.Contains(logs, "model=rules") {
		t.Fatalf("expected model on the access log, got %q", logs)
	}
}

func TestRecoverPanicsWithStructuredLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// A nil core panics on first use; recovery must turn that into a
	// structured 500.
	router := NewRouter(nil, logger)
	rr := doRequest(router, http.MethodGet, "/api/goals", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	body := rr.Body.String()
	if !strings.Contains(body, `{"error":"internal server error"}`) {
		t.Fatalf("expected structured error response, got %q", body)
	}

	logs := buf.String()
	if !strings.Contains(logs, "panic while handling request") {
		t.Fatalf("expected panic log, got %q", logs)
	}
	if !strings.Contains(logs, "request_id=") {
		t.Fatalf("expected request id in panic log, got %q", logs)
	}
}
