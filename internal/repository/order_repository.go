package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, user_id, anonymous_id, total_amount, status, payment_status,
	payment_method, order_code, voucher_id, user_name, user_email, user_phone, district,
	address, note, shipping_fee, created_at, updated_at`

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.AnonymousID, &o.TotalAmount, &o.Status, &o.PaymentStatus,
		&o.PaymentMethod, &o.OrderCode, &o.VoucherID, &o.UserName, &o.UserEmail, &o.UserPhone,
		&o.District, &o.Address, &o.Note, &o.ShippingFee, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, anonymous_id, total_amount, status, payment_status,
			payment_method, order_code, voucher_id, user_name, user_email, user_phone,
			district, address, note, shipping_fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`

	_, err := tx.Exec(ctx, query, order.ID, order.UserID, order.AnonymousID, order.TotalAmount,
		order.Status, order.PaymentStatus, order.PaymentMethod, order.OrderCode, order.VoucherID,
		order.UserName, order.UserEmail, order.UserPhone, order.District, order.Address,
		order.Note, order.ShippingFee)
	if err != nil {
		r.logger.Error().Err(err).Str("order_code", order.OrderCode).Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// CreateOrderItems inserts the order's line items within the transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, query, item.ID, item.OrderID, item.ProductID, item.Quantity); err != nil {
			r.logger.Error().Err(err).
				Str("order_id", item.OrderID.String()).
				Str("product_id", item.ProductID.String()).
				Msg("failed to insert order item")
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

// GetByID retrieves an order with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		"SELECT id, order_id, product_id, quantity FROM order_items WHERE order_id = $1", id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return order, items, nil
}

func (r *orderRepository) buildFilter(filter OrderFilter) (string, []any) {
	clauses := []string{"TRUE"}
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(user_name ILIKE $%d OR user_email ILIKE $%d OR user_phone ILIKE $%d OR order_code ILIKE $%d)",
			n, n, n, n))
	}

	return strings.Join(clauses, " AND "), args
}

// List retrieves orders matching the filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	where, args := r.buildFilter(filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE %s
		ORDER BY created_at DESC
	`, orderColumns, where)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// Count counts orders matching the filter.
func (r *orderRepository) Count(ctx context.Context, filter OrderFilter) (int, error) {
	where, args := r.buildFilter(filter)

	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE "+where, args...).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// UpdateStatus writes an order's fulfilment status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1", id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// UpdatePaymentStatus writes an order's payment status.
func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE orders SET payment_status = $2, updated_at = NOW() WHERE id = $1", id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update payment status")
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
