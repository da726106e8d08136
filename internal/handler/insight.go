package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shayari/shayari-go/internal/model"
)

// InsightGenerator is implemented by *service.InsightService.
type InsightGenerator interface {
	Generate(ctx context.Context, req model.InsightRequest) (model.InsightBundle, error)
}

// InsightHandler serves AI commentary for a poem.
type InsightHandler struct {
	service InsightGenerator
	logger  *slog.Logger
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(svc InsightGenerator, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{service: svc, logger: logger}
}

// HandleGenerate handles POST /api/v1/insights requests. Generation failures
// never surface here; the bundle always comes back complete.
func (h *InsightHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.InsightRequest
	if err := decodeJSON(w, r, maxPoemBody, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	bundle, err := h.service.Generate(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.InsightResponse{Success: true, AI: bundle})
}
