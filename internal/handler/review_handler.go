package handler

import (
	"net/http"

	"github.com/minhnion/WellHomeKitchen-BE/internal/middleware"
	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/service"

	"github.com/rs/zerolog"
)

// ReviewHandler handles review HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// Create handles POST /api/reviews requests.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	var req model.CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	review, err := h.service.Create(r.Context(), principal, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, "Review created successfully", review)
}

// Update handles PUT /api/reviews/{id} requests.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.UpdateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	review, err := h.service.Update(r.Context(), principal, id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Review updated successfully", review)
}

// Delete handles DELETE /api/reviews/{id} requests.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), principal, id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Review deleted successfully", nil)
}

// ListByProduct handles GET /api/products/{id}/reviews requests.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	reviews, err := h.service.ListByProduct(r.Context(), productID, page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, "Reviews retrieved successfully", reviews, len(reviews), nil)
}
