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

const productColumns = `id, name, slug, sku, description, price, discount_percent, quantity_sold,
	category_id, main_image, is_delete, star_average, number_of_reviews, created_at, updated_at`

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.SKU, &p.Description, &p.Price, &p.DiscountPercent,
		&p.QuantitySold, &p.CategoryID, &p.MainImage, &p.IsDelete, &p.StarAverage,
		&p.NumberOfReviews, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) buildFilter(filter ProductFilter) (string, []any) {
	clauses := []string{"is_delete = FALSE"}
	var args []any

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if len(filter.ProductIDs) > 0 {
		args = append(args, filter.ProductIDs)
		clauses = append(clauses, fmt.Sprintf("id = ANY($%d)", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// List retrieves non-deleted products matching the filter.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	where, args := r.buildFilter(filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY name
	`, productColumns, where)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Count counts non-deleted products matching the filter.
func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int, error) {
	where, args := r.buildFilter(filter)

	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE "+where, args...).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// GetByID retrieves a single non-deleted product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1 AND is_delete = FALSE
	`, productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetByIDs retrieves multiple non-deleted products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = ANY($1) AND is_delete = FALSE
		ORDER BY name
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// IncrementQuantitySold atomically adds to a product's sold counter.
// A single UPDATE avoids the read-modify-write lost-update hazard.
func (r *productRepository) IncrementQuantitySold(ctx context.Context, id uuid.UUID, by int) error {
	query := `
		UPDATE products
		SET quantity_sold = quantity_sold + $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, by)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to increment quantity sold")
		return fmt.Errorf("failed to increment quantity sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// GetForUpdate retrieves a product inside tx with its row locked.
func (r *productRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1 AND is_delete = FALSE
		FOR UPDATE
	`, productColumns)

	p, err := scanProduct(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to lock product row")
		return nil, fmt.Errorf("failed to lock product row: %w", err)
	}

	return p, nil
}

// UpdateReviewStats writes a product's review aggregates inside tx.
func (r *productRepository) UpdateReviewStats(ctx context.Context, tx pgx.Tx, id uuid.UUID, starAverage float64, numberOfReviews int) error {
	query := `
		UPDATE products
		SET star_average = $2, number_of_reviews = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, id, starAverage, numberOfReviews); err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update review stats")
		return fmt.Errorf("failed to update review stats: %w", err)
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
