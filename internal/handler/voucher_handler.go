package handler

import (
	"net/http"
	"strings"

	"github.com/minhnion/WellHomeKitchen-BE/internal/metrics"
	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// VoucherHandler handles voucher HTTP requests.
type VoucherHandler struct {
	service service.VoucherService
	logger  zerolog.Logger
}

// NewVoucherHandler creates a new voucher handler.
func NewVoucherHandler(service service.VoucherService, logger zerolog.Logger) *VoucherHandler {
	return &VoucherHandler{
		service: service,
		logger:  logger.With().Str("handler", "voucher").Logger(),
	}
}

// Validate handles POST /api/vouchers/validate requests.
func (h *VoucherHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateVoucherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	result, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		metrics.RecordVoucherValidation("rejected")
		writeError(w, err, h.logger)
		return
	}

	metrics.RecordVoucherValidation("accepted")
	writeSuccess(w, http.StatusOK, "Voucher is valid", result)
}

// GetByCode handles GET /api/vouchers/{code} requests.
func (h *VoucherHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		writeValidationError(w, model.ErrCodeMissingField, "Voucher code is required", h.logger)
		return
	}

	voucher, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Voucher retrieved successfully", voucher)
}

// List handles GET /api/vouchers requests.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	keyword := r.URL.Query().Get("keyword")

	vouchers, pagination, err := h.service.List(r.Context(), activeOnly, keyword, page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, "Vouchers retrieved successfully", vouchers, len(vouchers), pagination)
}

// Create handles POST /api/vouchers requests.
func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.VoucherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	voucher, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, "Voucher created successfully", voucher)
}

// Update handles PUT /api/vouchers/{id} requests.
func (h *VoucherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.VoucherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	voucher, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Voucher updated successfully", voucher)
}

// Delete handles DELETE /api/vouchers/{id} requests.
func (h *VoucherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Voucher deleted successfully", nil)
}
