package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements ReviewRepository using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *reviewRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// GetByID retrieves a review by id.
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var rev model.Review
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &rev, nil
}

// ExistsForProductUser reports whether the user already reviewed the product.
func (r *reviewRepository) ExistsForProductUser(ctx context.Context, tx pgx.Tx, productID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)",
		productID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return exists, nil
}

// ListByProduct retrieves a product's reviews, newest first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]model.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, productID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.Rating, &rev.Comment,
			&rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Create inserts a review within the provided transaction.
func (r *reviewRepository) Create(ctx context.Context, tx pgx.Tx, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	if _, err := tx.Exec(ctx, query, review.ID, review.ProductID, review.UserID,
		review.Rating, review.Comment); err != nil {
		r.logger.Error().Err(err).
			Str("product_id", review.ProductID.String()).
			Str("user_id", review.UserID.String()).
			Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// Update rewrites a review's rating and comment within the transaction.
func (r *reviewRepository) Update(ctx context.Context, tx pgx.Tx, review *model.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, review.ID, review.Rating, review.Comment)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID.String()).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

// Delete removes a review within the transaction.
func (r *reviewRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}
