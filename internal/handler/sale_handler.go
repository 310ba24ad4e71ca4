package handler

import (
	"net/http"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/service"

	"github.com/rs/zerolog"
)

// SaleHandler handles sale occasion HTTP requests.
type SaleHandler struct {
	service service.SaleService
	logger  zerolog.Logger
	now     func() time.Time
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(service service.SaleService, logger zerolog.Logger) *SaleHandler {
	return &SaleHandler{
		service: service,
		logger:  logger.With().Str("handler", "sale").Logger(),
		now:     time.Now,
	}
}

// GetAll handles GET /api/sales requests.
func (h *SaleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, "Sale occasions retrieved successfully", sales, len(sales), nil)
}

// GetSaleProducts handles GET /api/sales/products requests.
func (h *SaleHandler) GetSaleProducts(w http.ResponseWriter, r *http.Request) {
	at, err := timeQuery(r, h.now)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	categoryID, err := categoryQuery(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	products, pagination, err := h.service.GetSaleProducts(r.Context(), at, categoryID, page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, "Sale products retrieved successfully", products, len(products), pagination)
}

// GetSaleCategories handles GET /api/sales/categories requests.
func (h *SaleHandler) GetSaleCategories(w http.ResponseWriter, r *http.Request) {
	at, err := timeQuery(r, h.now)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	categories, err := h.service.GetSaleCategories(r.Context(), at)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, "Sale categories retrieved successfully", categories, len(categories), nil)
}

// Create handles POST /api/sales requests.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	sale, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, "Sale occasion created successfully", sale)
}

// Update handles PUT /api/sales/{id} requests.
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.UpdateSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	sale, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Sale occasion updated successfully", sale)
}

// Delete handles DELETE /api/sales/{id} requests.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Sale occasion deleted successfully", nil)
}
