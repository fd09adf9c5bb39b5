package api

import (
	"net/http"
	"strings"

	"budgetwise/internal/config"
)

type generationSettingsPayload struct {
	GenerationURL   string `json:"generation_url"`
	GenerationModel string `json:"generation_model"`
}

// getSettings reports the effective generation settings, after environment
// overrides.
func (h *handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings := config.GetGenerationSettings()
	writeJSON(w, http.StatusOK, generationSettingsPayload{
		GenerationURL:   settings.BaseURL,
		GenerationModel: settings.Model,
	})
}

// updateSettings persists generation settings to the config file. They take
// effect on the next start; environment variables still win over them.
func (h *handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var payload generationSettingsPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := config.LoadUserConfig()
	cfg.GenerationURL = strings.TrimSpace(payload.GenerationURL)
	cfg.GenerationModel = strings.TrimSpace(payload.GenerationModel)
	if err := config.SaveUserConfig(cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
