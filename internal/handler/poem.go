package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shayari/shayari-go/internal/middleware"
	"github.com/shayari/shayari-go/internal/model"
)

// PoemManager is implemented by *service.PoemService.
type PoemManager interface {
	Create(ctx context.Context, ownerID string, req model.PoemRequest) (model.PoemResponse, error)
	Update(ctx context.Context, ownerID, id string, req model.PoemRequest) (model.PoemResponse, error)
	Get(ctx context.Context, ownerID, id string) (model.PoemResponse, error)
	List(ctx context.Context, ownerID string, f model.PoemFilter) (model.PoemListResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteAll(ctx context.Context, ownerID string) (int64, error)
	Stats(ctx context.Context, ownerID string) (model.PoemStats, error)
	Unlock(ctx context.Context, ownerID, id, passphrase string) (model.PoemResponse, error)
}

// PoemHandler handles HTTP requests for the journal.
type PoemHandler struct {
	service PoemManager
	logger  *slog.Logger
}

// NewPoemHandler creates a new PoemHandler.
func NewPoemHandler(svc PoemManager, logger *slog.Logger) *PoemHandler {
	return &PoemHandler{service: svc, logger: logger}
}

// HandleCreate handles POST /api/v1/poems requests.
func (h *PoemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.PoemRequest
	if err := decodeJSON(w, r, maxPoemBody, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.PoemEnvelope{Success: true, Shayari: resp})
}

// HandleList handles GET /api/v1/poems requests.
func (h *PoemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	resp, err := h.service.List(r.Context(), userID, f)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/v1/poems/{id} requests.
func (h *PoemHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PoemEnvelope{Success: true, Shayari: resp})
}

// HandleUpdate handles PUT /api/v1/poems/{id} requests.
func (h *PoemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}

	var req model.PoemRequest
	if err := decodeJSON(w, r, maxPoemBody, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	resp, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PoemEnvelope{Success: true, Shayari: resp})
}

// HandleDelete handles DELETE /api/v1/poems/{id} requests.
func (h *PoemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Shayari deleted successfully"})
}

// HandleDeleteAll handles DELETE /api/v1/poems requests.
func (h *PoemHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	n, err := h.service.DeleteAll(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteAllResponse{
		Success: true,
		Deleted: n,
		Message: fmt.Sprintf("Successfully deleted %d shayaris", n),
	})
}

// HandleStats handles GET /api/v1/poems/stats requests.
func (h *PoemHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.StatsResponse{Success: true, Stats: stats})
}

// HandleUnlock handles POST /api/v1/poems/{id}/unlock requests.
func (h *PoemHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}

	var req model.UnlockRequest
	if err := decodeJSON(w, r, maxAuthBody, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	resp, err := h.service.Unlock(r.Context(), userID, id, req.Passphrase)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UnlockResponse{Success: true, Unlocked: true, Shayari: resp})
}

// identify resolves the caller and the {id} URL parameter, writing the error
// response itself when either is missing or malformed.
func (h *PoemHandler) identify(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return "", "", false
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid shayari id"))
		return "", "", false
	}
	return userID, id, true
}

func parseFilter(q url.Values) (model.PoemFilter, error) {
	f := model.PoemFilter{
		Mood:         q.Get("mood"),
		Tag:          q.Get("tag"),
		Search:       q.Get("search"),
		FavoriteOnly: q.Get("favorite") == "true",
		SecretOnly:   q.Get("secret") == "true",
	}

	var err error
	if f.Page, err = positiveInt(q, "page"); err != nil {
		return model.PoemFilter{}, err
	}
	if f.Limit, err = positiveInt(q, "limit"); err != nil {
		return model.PoemFilter{}, err
	}
	return f, nil
}

// positiveInt returns 0 when key is absent so the service applies its default.
func positiveInt(q url.Values, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}
