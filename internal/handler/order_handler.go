package handler

import (
	"net/http"

	"github.com/minhnion/WellHomeKitchen-BE/internal/metrics"
	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	metrics.RecordOrderCreated()
	writeSuccess(w, http.StatusCreated, "Order created successfully", order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Order retrieved successfully", order)
}

// List handles GET /api/orders requests (admin).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var status *model.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := model.OrderStatus(raw)
		switch s {
		case model.OrderPending, model.OrderShipped, model.OrderDelivered, model.OrderCancelled:
			status = &s
		default:
			writeValidationError(w, model.ErrCodeMissingField, "Invalid status parameter", h.logger)
			return
		}
	}
	keyword := r.URL.Query().Get("keyword")

	orders, pagination, err := h.service.List(r.Context(), status, keyword, page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeList(w, "Orders retrieved successfully", orders, len(orders), pagination)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, model.OrderStatus(req.Status)); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Order status updated successfully", nil)
}

// UpdatePaymentStatus handles PATCH /api/orders/{id}/payment requests.
func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.UpdatePaymentStatus(r.Context(), id, model.PaymentStatus(req.Status)); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Payment status updated successfully", nil)
}
