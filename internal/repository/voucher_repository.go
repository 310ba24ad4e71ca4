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

const voucherColumns = `id, code, discount_type, discount_value, min_purchase_amount,
	max_discount_amount, start_date, end_date, created_at, updated_at`

// voucherRepository implements VoucherRepository using PostgreSQL.
type voucherRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVoucherRepository creates a new PostgreSQL-backed voucher repository.
func NewVoucherRepository(pool *pgxpool.Pool, logger zerolog.Logger) VoucherRepository {
	return &voucherRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "voucher").Logger(),
	}
}

func scanVoucher(row pgx.Row) (*model.Voucher, error) {
	var v model.Voucher
	err := row.Scan(&v.ID, &v.Code, &v.DiscountType, &v.DiscountValue, &v.MinPurchaseAmount,
		&v.MaxDiscountAmount, &v.StartDate, &v.EndDate, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByCode retrieves a voucher by its unique code.
func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*model.Voucher, error) {
	query := fmt.Sprintf("SELECT %s FROM vouchers WHERE code = $1", voucherColumns)

	v, err := scanVoucher(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("voucher not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query voucher")
		return nil, fmt.Errorf("failed to query voucher: %w", err)
	}

	if err := r.loadExclusions(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetByID retrieves a voucher by id.
func (r *voucherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	query := fmt.Sprintf("SELECT %s FROM vouchers WHERE id = $1", voucherColumns)

	v, err := scanVoucher(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to query voucher")
		return nil, fmt.Errorf("failed to query voucher: %w", err)
	}

	if err := r.loadExclusions(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *voucherRepository) buildFilter(filter VoucherFilter) (string, []any) {
	clauses := []string{"TRUE"}
	var args []any

	if filter.ActiveAt != nil {
		args = append(args, *filter.ActiveAt)
		clauses = append(clauses, fmt.Sprintf("start_date <= $%d AND end_date >= $%d", len(args), len(args)))
	}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		clauses = append(clauses, fmt.Sprintf("code ILIKE $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// List retrieves vouchers matching the filter, newest first.
func (r *voucherRepository) List(ctx context.Context, filter VoucherFilter) ([]model.Voucher, error) {
	where, args := r.buildFilter(filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM vouchers
		WHERE %s
		ORDER BY created_at DESC
	`, voucherColumns, where)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vouchers")
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []model.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	for i := range vouchers {
		if err := r.loadExclusions(ctx, &vouchers[i]); err != nil {
			return nil, err
		}
	}

	return vouchers, nil
}

// Count counts vouchers matching the filter.
func (r *voucherRepository) Count(ctx context.Context, filter VoucherFilter) (int, error) {
	where, args := r.buildFilter(filter)

	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM vouchers WHERE "+where, args...).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count vouchers")
		return 0, fmt.Errorf("failed to count vouchers: %w", err)
	}
	return count, nil
}

// Create inserts a voucher with its exclusion list.
func (r *voucherRepository) Create(ctx context.Context, v *model.Voucher) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO vouchers (id, code, discount_type, discount_value, min_purchase_amount,
			max_discount_amount, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, query, v.ID, v.Code, v.DiscountType, v.DiscountValue,
		v.MinPurchaseAmount, v.MaxDiscountAmount, v.StartDate, v.EndDate); err != nil {
		r.logger.Error().Err(err).Str("code", v.Code).Msg("failed to insert voucher")
		return fmt.Errorf("failed to insert voucher: %w", err)
	}

	if err := r.insertExclusions(ctx, tx, v); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit voucher: %w", err)
	}
	return nil
}

// Update rewrites a voucher and its exclusion list.
func (r *voucherRepository) Update(ctx context.Context, v *model.Voucher) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE vouchers
		SET code = $2, discount_type = $3, discount_value = $4, min_purchase_amount = $5,
			max_discount_amount = $6, start_date = $7, end_date = $8, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query, v.ID, v.Code, v.DiscountType, v.DiscountValue,
		v.MinPurchaseAmount, v.MaxDiscountAmount, v.StartDate, v.EndDate)
	if err != nil {
		r.logger.Error().Err(err).Str("voucher_id", v.ID.String()).Msg("failed to update voucher")
		return fmt.Errorf("failed to update voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVoucherNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM voucher_excluded_products WHERE voucher_id = $1", v.ID); err != nil {
		return fmt.Errorf("failed to clear voucher exclusions: %w", err)
	}

	if err := r.insertExclusions(ctx, tx, v); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit voucher update: %w", err)
	}
	return nil
}

// Delete removes a voucher; exclusions cascade via foreign key.
func (r *voucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM vouchers WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to delete voucher")
		return fmt.Errorf("failed to delete voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVoucherNotFound
	}
	return nil
}

func (r *voucherRepository) loadExclusions(ctx context.Context, v *model.Voucher) error {
	rows, err := r.pool.Query(ctx,
		"SELECT product_id FROM voucher_excluded_products WHERE voucher_id = $1", v.ID)
	if err != nil {
		return fmt.Errorf("failed to query voucher exclusions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan excluded product: %w", err)
		}
		v.ExcludedProducts = append(v.ExcludedProducts, id)
	}
	return rows.Err()
}

func (r *voucherRepository) insertExclusions(ctx context.Context, tx pgx.Tx, v *model.Voucher) error {
	for _, productID := range v.ExcludedProducts {
		if _, err := tx.Exec(ctx,
			"INSERT INTO voucher_excluded_products (voucher_id, product_id) VALUES ($1, $2)",
			v.ID, productID); err != nil {
			return fmt.Errorf("failed to insert voucher exclusion: %w", err)
		}
	}
	return nil
}
