package handler

import (
	"log/slog"
	"net/http"

	"github.com/shayari/shayari-go/internal/model"
	"github.com/shayari/shayari-go/internal/service"
)

// InspirationSource is implemented by *service.InspirationService.
type InspirationSource interface {
	Lines() ([]string, error)
}

// InspirationHandler serves the public landing-page lines.
type InspirationHandler struct {
	service InspirationSource
	logger  *slog.Logger
}

// NewInspirationHandler creates a new InspirationHandler.
func NewInspirationHandler(svc InspirationSource, logger *slog.Logger) *InspirationHandler {
	return &InspirationHandler{service: svc, logger: logger}
}

// HandleList handles GET /api/v1/inspiration requests.
func (h *InspirationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Lines()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "inspiration lines unavailable", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":  false,
			"error":    "failed to fetch shayaris",
			"fallback": []string{service.InspirationFallback},
		})
		return
	}

	writeJSON(w, http.StatusOK, model.InspirationResponse{
		Success:  true,
		Shayaris: lines,
		Count:    len(lines),
	})
}
