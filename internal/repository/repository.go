package repository

import (
	"context"
	"errors"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ProductFilter narrows product listing queries. Soft-deleted rows are always
// excluded.
type ProductFilter struct {
	CategoryID *uuid.UUID
	ProductIDs []uuid.UUID
	Limit      int
	Offset     int
}

// ProductRepository defines product data access operations.
type ProductRepository interface {
	// List retrieves non-deleted products matching the filter.
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)

	// Count counts non-deleted products matching the filter, ignoring pagination.
	Count(ctx context.Context, filter ProductFilter) (int, error)

	// GetByID retrieves a single non-deleted product, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple non-deleted products by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// IncrementQuantitySold atomically adds to a product's sold counter.
	IncrementQuantitySold(ctx context.Context, id uuid.UUID, by int) error

	// GetForUpdate retrieves a product inside tx with its row locked,
	// serialising concurrent review-aggregate updates per product.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Product, error)

	// UpdateReviewStats writes a product's review aggregates inside tx.
	UpdateReviewStats(ctx context.Context, tx pgx.Tx, id uuid.UUID, starAverage float64, numberOfReviews int) error
}

// SaleRepository defines sale occasion data access operations.
type SaleRepository interface {
	// ActiveEntries returns every campaign entry whose window contains at
	// (inclusive both ends), optionally restricted to the given products.
	// A nil or empty productIDs slice means all products.
	ActiveEntries(ctx context.Context, productIDs []uuid.UUID, at time.Time) ([]model.ActiveSaleEntry, error)

	// ActiveCategories returns the categories of products discounted at the
	// given instant.
	ActiveCategories(ctx context.Context, at time.Time) ([]model.Category, error)

	// OverlappingProducts returns product ids that appear both in the given
	// set and in another campaign whose window intersects [startAt, endAt].
	// The campaign with excludeID is ignored.
	OverlappingProducts(ctx context.Context, excludeID uuid.UUID, productIDs []uuid.UUID, startAt, endAt time.Time) ([]uuid.UUID, error)

	// GetAll retrieves all sale occasions with their entries, newest start first.
	GetAll(ctx context.Context) ([]model.SaleOccasion, error)

	// GetByID retrieves a sale occasion with its entries, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.SaleOccasion, error)

	// Create inserts a sale occasion with its entries in one transaction.
	Create(ctx context.Context, sale *model.SaleOccasion) error

	// Update rewrites a sale occasion's window and entries in one transaction.
	Update(ctx context.Context, sale *model.SaleOccasion) error

	// Delete removes a sale occasion and its entries.
	Delete(ctx context.Context, id uuid.UUID) error
}

// VoucherFilter narrows voucher listing queries.
type VoucherFilter struct {
	ActiveAt *time.Time
	Keyword  string
	Limit    int
	Offset   int
}

// VoucherRepository defines voucher data access operations.
type VoucherRepository interface {
	// GetByCode retrieves a voucher by its unique code, or nil when absent.
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)

	// GetByID retrieves a voucher by id, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error)

	// List retrieves vouchers matching the filter, newest first.
	List(ctx context.Context, filter VoucherFilter) ([]model.Voucher, error)

	// Count counts vouchers matching the filter, ignoring pagination.
	Count(ctx context.Context, filter VoucherFilter) (int, error)

	// Create inserts a voucher with its exclusion list.
	Create(ctx context.Context, v *model.Voucher) error

	// Update rewrites a voucher and its exclusion list.
	Update(ctx context.Context, v *model.Voucher) error

	// Delete removes a voucher. Historical orders keep their snapshot totals.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderFilter narrows order listing queries.
type OrderFilter struct {
	Status  *model.OrderStatus
	Keyword string
	Limit   int
	Offset  int
}

// OrderRepository defines order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)

	// Count counts orders matching the filter, ignoring pagination.
	Count(ctx context.Context, filter OrderFilter) (int, error)

	// UpdateStatus writes an order's fulfilment status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error

	// UpdatePaymentStatus writes an order's payment status.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error
}

// ReviewRepository defines review data access operations. Mutations run
// inside a transaction so product aggregates stay consistent with the review
// rows under the product row lock.
type ReviewRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetByID retrieves a review, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// ExistsForProductUser reports whether the user already reviewed the product.
	ExistsForProductUser(ctx context.Context, tx pgx.Tx, productID, userID uuid.UUID) (bool, error)

	// ListByProduct retrieves a product's reviews, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]model.Review, error)

	// Create inserts a review within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, review *model.Review) error

	// Update rewrites a review's rating and comment within the transaction.
	Update(ctx context.Context, tx pgx.Tx, review *model.Review) error

	// Delete removes a review within the transaction.
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The unique index is the authoritative duplicate guard; existence
// pre-checks in the services are only an optimisation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
