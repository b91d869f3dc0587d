package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clavier/clavier/internal/auth"
	"github.com/clavier/clavier/internal/handler/dto"
	"github.com/clavier/clavier/internal/service"
)

// ScoreHandler handles HTTP requests for score operations.
// All routes sit behind the auth middleware; the caller identity is
// taken from the request context, never from the request body.
type ScoreHandler struct {
	svc    *service.ScoreService
	logger *slog.Logger
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(svc *service.ScoreService, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/scores.
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	scores, err := h.svc.List(r.Context(), *identity)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToScoreListResponse(scores))
}

// Create handles POST /api/v1/scores.
func (h *ScoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req dto.CreateScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateScoreInput{
		Title:           req.Title,
		Description:     req.Description,
		Notation:        req.Notation,
		ClientTimestamp: req.Timestamp,
	}

	score, err := h.svc.Create(r.Context(), *identity, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("score_created",
		"score_id", score.ID,
		"user_id", identity.UserID,
	)

	writeJSON(w, http.StatusCreated, dto.ToScoreResponse(score))
}

// Update handles PUT /api/v1/scores/{id}.
func (h *ScoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Score ID is required")
		return
	}

	var req dto.UpdateScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	patch := service.UpdateScoreInput{
		Title:       req.Title,
		Description: req.Description,
		Notation:    req.Notation,
	}

	score, err := h.svc.Update(r.Context(), *identity, id, patch)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("score_updated",
		"score_id", score.ID,
		"user_id", identity.UserID,
	)

	writeJSON(w, http.StatusOK, dto.ToScoreResponse(score))
}

// Delete handles DELETE /api/v1/scores/{id}.
func (h *ScoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Score ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), *identity, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("score_deleted",
		"score_id", id,
		"user_id", identity.UserID,
	)

	writeJSON(w, http.StatusOK, dto.DeleteScoreResponse{Deleted: true, ID: id})
}

// handleServiceError maps score service errors to HTTP responses.
// A non-owner gets 403, distinct from the 401 the auth middleware
// returns for missing or invalid tokens.
func (h *ScoreHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrScoreNotFound):
		writeError(w, http.StatusNotFound, "SCORE_NOT_FOUND", "Score not found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Score belongs to another user")
	case errors.Is(err, service.ErrEmptyNotation):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Notation must not be empty")
	case errors.Is(err, service.ErrEmptyTitle):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Title must not be empty")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
