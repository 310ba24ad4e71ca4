package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// saleRepository implements SaleRepository using PostgreSQL.
type saleRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSaleRepository creates a new PostgreSQL-backed sale occasion repository.
func NewSaleRepository(pool *pgxpool.Pool, logger zerolog.Logger) SaleRepository {
	return &saleRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "sale").Logger(),
	}
}

// ActiveEntries returns every campaign entry whose window contains at. The
// whole product batch resolves in this single query; the tie-break between
// overlapping campaigns is applied in-process by the pricing package.
func (r *saleRepository) ActiveEntries(ctx context.Context, productIDs []uuid.UUID, at time.Time) ([]model.ActiveSaleEntry, error) {
	query := `
		SELECT so.id, so.name, so.start_at, so.end_at,
		       sp.product_id, sp.sale_quantity, sp.sale_percent
		FROM sale_occasions so
		JOIN sale_products sp ON sp.sale_id = so.id
		WHERE so.start_at <= $1 AND so.end_at >= $1
	`
	args := []any{at}

	if len(productIDs) > 0 {
		query += " AND sp.product_id = ANY($2)"
		args = append(args, productIDs)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Time("at", at).Msg("failed to query active sale entries")
		return nil, fmt.Errorf("failed to query active sale entries: %w", err)
	}
	defer rows.Close()

	var entries []model.ActiveSaleEntry
	for rows.Next() {
		var e model.ActiveSaleEntry
		if err := rows.Scan(&e.SaleID, &e.SaleName, &e.StartAt, &e.EndAt,
			&e.ProductID, &e.SaleQuantity, &e.SalePercent); err != nil {
			return nil, fmt.Errorf("failed to scan sale entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale entries: %w", err)
	}

	return entries, nil
}

// ActiveCategories returns the categories of products discounted at the given instant.
func (r *saleRepository) ActiveCategories(ctx context.Context, at time.Time) ([]model.Category, error) {
	query := `
		SELECT DISTINCT c.id, c.name
		FROM sale_occasions so
		JOIN sale_products sp ON sp.sale_id = so.id
		JOIN products p ON p.id = sp.product_id AND p.is_delete = FALSE
		JOIN categories c ON c.id = p.category_id
		WHERE so.start_at <= $1 AND so.end_at >= $1
		ORDER BY c.name
	`

	rows, err := r.pool.Query(ctx, query, at)
	if err != nil {
		r.logger.Error().Err(err).Time("at", at).Msg("failed to query sale categories")
		return nil, fmt.Errorf("failed to query sale categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// OverlappingProducts returns product ids claimed by another campaign whose
// window intersects [startAt, endAt].
func (r *saleRepository) OverlappingProducts(ctx context.Context, excludeID uuid.UUID, productIDs []uuid.UUID, startAt, endAt time.Time) ([]uuid.UUID, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT DISTINCT sp.product_id
		FROM sale_occasions so
		JOIN sale_products sp ON sp.sale_id = so.id
		WHERE so.id <> $1
		  AND sp.product_id = ANY($2)
		  AND so.start_at <= $4 AND $3 <= so.end_at
	`

	rows, err := r.pool.Query(ctx, query, excludeID, productIDs, startAt, endAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query overlapping sale products")
		return nil, fmt.Errorf("failed to query overlapping sale products: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product ids: %w", err)
	}

	return ids, nil
}

// GetAll retrieves all sale occasions with their entries, newest start first.
func (r *saleRepository) GetAll(ctx context.Context) ([]model.SaleOccasion, error) {
	query := `
		SELECT id, name, slug, start_at, end_at, created_at, updated_at
		FROM sale_occasions
		ORDER BY start_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query sale occasions")
		return nil, fmt.Errorf("failed to query sale occasions: %w", err)
	}
	defer rows.Close()

	var sales []model.SaleOccasion
	for rows.Next() {
		var s model.SaleOccasion
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.StartAt, &s.EndAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale occasion: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale occasions: %w", err)
	}

	for i := range sales {
		entries, err := r.entriesForSale(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Products = entries
	}

	return sales, nil
}

// GetByID retrieves a sale occasion with its entries.
func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SaleOccasion, error) {
	query := `
		SELECT id, name, slug, start_at, end_at, created_at, updated_at
		FROM sale_occasions
		WHERE id = $1
	`

	var s model.SaleOccasion
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Slug, &s.StartAt, &s.EndAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("sale_id", id.String()).Msg("sale occasion not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("sale_id", id.String()).Msg("failed to query sale occasion")
		return nil, fmt.Errorf("failed to query sale occasion: %w", err)
	}

	entries, err := r.entriesForSale(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Products = entries

	return &s, nil
}

// Create inserts a sale occasion with its entries in one transaction.
func (r *saleRepository) Create(ctx context.Context, sale *model.SaleOccasion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO sale_occasions (id, name, slug, start_at, end_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, query, sale.ID, sale.Name, sale.Slug, sale.StartAt, sale.EndAt); err != nil {
		r.logger.Error().Err(err).Str("sale_name", sale.Name).Msg("failed to insert sale occasion")
		return fmt.Errorf("failed to insert sale occasion: %w", err)
	}

	if err := r.insertEntries(ctx, tx, sale.ID, sale.Products); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sale occasion: %w", err)
	}
	return nil
}

// Update rewrites a sale occasion's window and entries in one transaction.
func (r *saleRepository) Update(ctx context.Context, sale *model.SaleOccasion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE sale_occasions
		SET start_at = $2, end_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query, sale.ID, sale.StartAt, sale.EndAt); err != nil {
		r.logger.Error().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to update sale occasion")
		return fmt.Errorf("failed to update sale occasion: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM sale_products WHERE sale_id = $1", sale.ID); err != nil {
		return fmt.Errorf("failed to clear sale entries: %w", err)
	}

	if err := r.insertEntries(ctx, tx, sale.ID, sale.Products); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sale occasion update: %w", err)
	}
	return nil
}

// Delete removes a sale occasion; entries cascade via foreign key.
func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM sale_occasions WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("sale_id", id.String()).Msg("failed to delete sale occasion")
		return fmt.Errorf("failed to delete sale occasion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSaleNotFound
	}
	return nil
}

func (r *saleRepository) entriesForSale(ctx context.Context, saleID uuid.UUID) ([]model.SaleEntry, error) {
	query := `
		SELECT product_id, sale_quantity, sale_percent
		FROM sale_products
		WHERE sale_id = $1
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale entries: %w", err)
	}
	defer rows.Close()

	var entries []model.SaleEntry
	for rows.Next() {
		var e model.SaleEntry
		if err := rows.Scan(&e.ProductID, &e.SaleQuantity, &e.SalePercent); err != nil {
			return nil, fmt.Errorf("failed to scan sale entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale entries: %w", err)
	}

	return entries, nil
}

func (r *saleRepository) insertEntries(ctx context.Context, tx pgx.Tx, saleID uuid.UUID, entries []model.SaleEntry) error {
	query := `
		INSERT INTO sale_products (sale_id, product_id, sale_quantity, sale_percent)
		VALUES ($1, $2, $3, $4)
	`
	for _, e := range entries {
		if _, err := tx.Exec(ctx, query, saleID, e.ProductID, e.SaleQuantity, e.SalePercent); err != nil {
			r.logger.Error().Err(err).
				Str("sale_id", saleID.String()).
				Str("product_id", e.ProductID.String()).
				Msg("failed to insert sale entry")
			return fmt.Errorf("failed to insert sale entry: %w", err)
		}
	}
	return nil
}
