package handler

import (
	"net/http"

	"github.com/minhnion/WellHomeKitchen-BE/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with pagination.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	categoryID, err := categoryQuery(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	products, pagination, err := h.service.List(r.Context(), categoryID, page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, "Products retrieved successfully", products, len(products), pagination)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Product retrieved successfully", product)
}
