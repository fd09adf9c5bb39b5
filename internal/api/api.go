package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"budgetwise/pkg/budgetwise"
)

// NewRouter builds the HTTP API router.
func NewRouter(core *budgetwise.Core, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverPanics(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handler{core: core}

	r.Get("/api/health", h.health)

	// Transactions
	r.Get("/api/transactions", h.getTransactions)
	r.Post("/api/transactions", h.addTransaction)
	r.Delete("/api/transactions/{id}", h.deleteTransaction)

	// Goals
	r.Get("/api/goals", h.getGoals)
	r.Post("/api/goals", h.createGoal)
	r.Get("/api/goals/{id}", h.getGoal)
	r.Put("/api/goals/{id}", h.updateGoal)
	r.Delete("/api/goals/{id}", h.deleteGoal)
	r.Post("/api/goals/{id}/contribute", h.contributeToGoal)

	// Profile
	r.Get("/api/profile", h.getProfile)
	r.Put("/api/profile", h.updateProfile)

	// Insights
	r.Post("/api/insights", h.generateInsight)
	r.Get("/api/insights", h.getInsightHistory)

	// Summary and analytics
	r.Get("/api/summary", h.getSummary)
	r.Get("/api/analytics/categories", h.getCategorySpending)

	// Settings
	r.Get("/api/settings", h.getSettings)
	r.Put("/api/settings", h.updateSettings)

	return r
}

type handler struct {
	core *budgetwise.Core
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	if setter, ok := w.(interface{ SetErrorMessage(string) }); ok {
		setter.SetErrorMessage(message)
	}
	writeJSON(w, status, map[string]string{"error": message})
}
