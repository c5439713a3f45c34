package delivery

import (
	"encoding/json"
	"net/http"
)

type HealthHandler struct {
	model        string
	summaryModel string // empty → disabled
}

func NewHealthHandler(model, summaryModel string) *HealthHandler {
	return &HealthHandler{
		model:        model,
		summaryModel: summaryModel,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	summarization := h.summaryModel
	if summarization == "" {
		summarization = "disabled"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":        "ok",
		"model":         h.model,
		"summarization": summarization,
	})
}
