package service

import (
	"context"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
)

// Pagination describes a paginated result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ProductService defines catalogue read operations. All reads return
// sale-decorated views.
type ProductService interface {
	// List retrieves decorated products with pagination.
	List(ctx context.Context, categoryID *uuid.UUID, page, limit int) ([]model.ProductView, *Pagination, error)

	// GetByID retrieves a single decorated product.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProductView, error)
}

// SaleService defines sale occasion operations.
type SaleService interface {
	// GetAll retrieves all sale occasions, newest start first.
	GetAll(ctx context.Context) ([]model.SaleOccasion, error)

	// GetSaleProducts retrieves products discounted at the given instant.
	GetSaleProducts(ctx context.Context, at time.Time, categoryID *uuid.UUID, page, limit int) ([]model.SaleProductView, *Pagination, error)

	// GetSaleCategories retrieves the categories with discounted products at
	// the given instant.
	GetSaleCategories(ctx context.Context, at time.Time) ([]model.Category, error)

	// Create creates a sale occasion.
	Create(ctx context.Context, req *model.CreateSaleRequest) (*model.SaleOccasion, error)

	// Update updates a sale occasion, gated by its temporal phase.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateSaleRequest) (*model.SaleOccasion, error)

	// Delete deletes a sale occasion that has not started yet.
	Delete(ctx context.Context, id uuid.UUID) error
}

// VoucherService defines voucher operations.
type VoucherService interface {
	// Validate checks a voucher against a cart and computes its discount.
	Validate(ctx context.Context, req *model.ValidateVoucherRequest) (*model.VoucherValidation, error)

	// GetByCode retrieves a voucher by its code.
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)

	// List retrieves vouchers with pagination.
	List(ctx context.Context, activeOnly bool, keyword string, page, limit int) ([]model.Voucher, *Pagination, error)

	// Create creates a voucher.
	Create(ctx context.Context, req *model.VoucherRequest) (*model.Voucher, error)

	// Update updates a voucher. Historical orders keep their snapshot totals.
	Update(ctx context.Context, id uuid.UUID, req *model.VoucherRequest) (*model.Voucher, error)

	// Delete deletes a voucher.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines order operations.
type OrderService interface {
	// Create creates an order, computing its total from static product
	// discounts and an optional voucher.
	Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its items and product details.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves orders with pagination (admin).
	List(ctx context.Context, status *model.OrderStatus, keyword string, page, limit int) ([]model.Order, *Pagination, error)

	// UpdateStatus moves an order along its forward-only status machine.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error

	// UpdatePaymentStatus updates an order's payment status.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error
}

// ReviewService defines review operations.
type ReviewService interface {
	// Create creates a review and updates the product's aggregates.
	Create(ctx context.Context, principal *model.Principal, req *model.CreateReviewRequest) (*model.Review, error)

	// Update updates the caller's own review.
	Update(ctx context.Context, principal *model.Principal, id uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error)

	// Delete deletes a review; owners and admins only.
	Delete(ctx context.Context, principal *model.Principal, id uuid.UUID) error

	// ListByProduct retrieves a product's reviews with pagination.
	ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.Review, error)
}

// Notification is a best-effort event fanned out to staff roles.
type Notification struct {
	Type    string
	Message string
	Roles   []model.Role
}

// Notifier delivers notifications. Delivery is best effort; failures must
// never fail the operation that raised the event.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// clampPage normalises page/limit query values.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func newPagination(page, limit, total int) *Pagination {
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
