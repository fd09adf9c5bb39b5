package budgetwise

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultGenerationBaseURL = "http://localhost:11434"
	defaultGenerationModel   = "llama3"
	defaultGenerationTimeout = 2 * time.Minute
	generateEndpointPath     = "/api/generate"
	maxGenerationBodySize    = 2 << 20
)

// GenerationConfig configures the remote text-generation service. Values
// are read once at startup and passed in here; the gateway never mutates
// them.
type GenerationConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

func (cfg GenerationConfig) withDefaults() GenerationConfig {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGenerationBaseURL
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaultGenerationModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGenerationTimeout
	}
	return cfg
}

// gatewayReason classifies why a remote generation attempt failed.
type gatewayReason string

const (
	reasonTimeout           gatewayReason = "timeout"
	reasonTransport         gatewayReason = "transport"
	reasonMalformedResponse gatewayReason = "malformed_response"
)

// gatewayError is a reason-coded generation failure. It never leaves the
// gateway: Invoke converts it into a degraded AdvisoryResult.
type gatewayError struct {
	reason gatewayReason
	err    error
}

func (e *gatewayError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.reason, e.err)
}

func (e *gatewayError) Unwrap() error {
	return e.err
}

const advisorPersona = `You are a financial advisor AI for the Budgetwise expense tracker in India.
Analyze the user's financial data and answer their question.

IMPORTANT: Always use Indian Rupees (₹), never $ or USD. All amounts are INR.

Structure the answer in three sections:
1. Analysis
2. Recommendations
3. Action Steps

Keep the tone structured and professional, and the advice practical.`

// buildAdvisorPrompt combines the persona, the user query, and the decoded
// financial context into one generation prompt.
func buildAdvisorPrompt(query, contextText string) string {
	var b strings.Builder
	b.WriteString(advisorPersona)
	b.WriteString("\n\nQuery: ")
	b.WriteString(strings.TrimSpace(query))
	b.WriteString("\n\nContext:\n")
	b.WriteString(strings.TrimSpace(decodeHTMLEntities(contextText)))
	return b.String()
}

// buildGenerateEndpoint validates the base URL and appends the generation
// path unless the caller already supplied it.
func buildGenerateEndpoint(baseURL string) (string, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultGenerationBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if !strings.HasSuffix(strings.ToLower(trimmed), generateEndpointPath) {
		trimmed += generateEndpointPath
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid generation base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid generation base url scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid generation base url host")
	}
	return trimmed, nil
}

type generationRequest struct {
	EndpointURL string
	Model       string
	Prompt      string
	Logger      *slog.Logger
}

// generateCompletion is swappable so tests can stub the remote call.
var generateCompletion = requestGeneration

// requestGeneration posts {model, prompt, stream:false} to the generation
// endpoint and returns the "response" field of the JSON envelope. All
// failures come back as *gatewayError.
func requestGeneration(ctx context.Context, req generationRequest) (string, error) {
	payload := map[string]any{
		"model":  req.Model,
		"prompt": req.Prompt,
		"stream": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &gatewayError{reason: reasonTransport, err: fmt.Errorf("marshal generation request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return "", &gatewayError{reason: reasonTransport, err: fmt.Errorf("build generation request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logGenerationDebug(req.Logger, req.EndpointURL, req.Model, req.Prompt)

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		if isTimeoutError(err) {
			return "", &gatewayError{reason: reasonTimeout, err: err}
		}
		return "", &gatewayError{reason: reasonTransport, err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxGenerationBodySize))
	if err != nil {
		if isTimeoutError(err) {
			return "", &gatewayError{reason: reasonTimeout, err: err}
		}
		return "", &gatewayError{reason: reasonTransport, err: fmt.Errorf("read generation response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &gatewayError{
			reason: reasonTransport,
			err:    fmt.Errorf("generation upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var envelope struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", &gatewayError{reason: reasonMalformedResponse, err: fmt.Errorf("decode generation response: %w", err)}
	}
	if strings.TrimSpace(envelope.Response) == "" {
		return "", &gatewayError{reason: reasonMalformedResponse, err: errors.New("generation response is empty")}
	}
	return envelope.Response, nil
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "context deadline exceeded") || strings.Contains(message, "timeout")
}

func logGenerationDebug(logger *slog.Logger, endpoint, model, prompt string) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("generation request",
		"endpoint", endpoint,
		"model", model,
		"prompt_bytes", len(prompt),
	)
}

// insightGateway issues bounded calls to the remote generation service for
// queries no deterministic advisor covers.
type insightGateway struct {
	cfg    GenerationConfig
	logger *slog.Logger
}

func newInsightGateway(cfg GenerationConfig, logger *slog.Logger) *insightGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &insightGateway{cfg: cfg.withDefaults(), logger: logger}
}

// Model reports the configured model identifier.
func (g *insightGateway) Model() string {
	return g.cfg.Model
}

// Invoke asks the remote model and normalizes its answer. It never returns
// an error: every failure degrades into a well-formed Error-category
// result so the caller can always render something.
func (g *insightGateway) Invoke(ctx context.Context, query, contextText string) AdvisoryResult {
	endpoint, err := buildGenerateEndpoint(g.cfg.BaseURL)
	if err != nil {
		g.logger.Error("generation endpoint invalid", "base_url", g.cfg.BaseURL, "err", err)
		return degradedResult(reasonTransport)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	text, err := generateCompletion(callCtx, generationRequest{
		EndpointURL: endpoint,
		Model:       g.cfg.Model,
		Prompt:      buildAdvisorPrompt(query, contextText),
		Logger:      g.logger,
	})
	if err != nil {
		reason := reasonTransport
		var gwErr *gatewayError
		if errors.As(err, &gwErr) {
			reason = gwErr.reason
		} else if isTimeoutError(err) {
			reason = reasonTimeout
		}
		g.logger.Warn("generation call failed", "reason", string(reason), "err", err)
		return degradedResult(reason)
	}

	return normalizeModelResponse(text)
}

// degradedResult is the apologetic fallback returned when the remote
// model cannot be reached or understood.
func degradedResult(reason gatewayReason) AdvisoryResult {
	recommendation := "Please try again in a few moments."
	if reason == reasonTimeout {
		recommendation = "The advisor took too long to respond. Please try again with a shorter question."
	}
	return AdvisoryResult{
		Insight:        "Sorry, I couldn't generate an insight right now.",
		Category:       CategoryError,
		Recommendation: recommendation,
	}
}
