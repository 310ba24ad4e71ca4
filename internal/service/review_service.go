package service

import (
	"context"
	"fmt"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
//
// Aggregate updates (star_average, number_of_reviews) are incremental and
// order-dependent, so each mutation locks the product row for the duration of
// its transaction; concurrent reviews of the same product serialise on that
// lock instead of drifting the average.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// Create creates a review and folds its rating into the product's aggregates.
func (s *reviewService) Create(ctx context.Context, principal *model.Principal, req *model.CreateReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.Validationf(model.ErrCodeMissingField, "Rating must be between 1 and 5")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, model.Validationf(model.ErrCodeMissingField, "Invalid product id")
	}

	review := &model.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    principal.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		product, err := s.productRepo.GetForUpdate(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrProductNotFound
		}

		exists, err := s.reviewRepo.ExistsForProductUser(ctx, tx, productID, principal.ID)
		if err != nil {
			return err
		}
		if exists {
			return model.ErrDuplicateReview
		}

		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			if repository.IsUniqueViolation(err) {
				return model.ErrDuplicateReview
			}
			return err
		}

		count := product.NumberOfReviews + 1
		average := (product.StarAverage*float64(product.NumberOfReviews) + float64(req.Rating)) / float64(count)

		return s.productRepo.UpdateReviewStats(ctx, tx, productID, average, count)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("product_id", productID.String()).
		Int("rating", req.Rating).
		Msg("review created")

	return review, nil
}

// Update updates the caller's own review, adjusting the product average when
// the rating changed.
func (s *reviewService) Update(ctx context.Context, principal *model.Principal, id uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error) {
	if req.Rating == nil && req.Comment == nil {
		return nil, model.Validationf(model.ErrCodeMissingField, "No fields to update")
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, model.Validationf(model.ErrCodeMissingField, "Rating must be between 1 and 5")
	}

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return nil, model.ErrReviewNotFound
	}
	if review.UserID != principal.ID {
		return nil, model.ErrForbidden
	}

	oldRating := review.Rating
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		product, err := s.productRepo.GetForUpdate(ctx, tx, review.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrProductNotFound
		}

		if err := s.reviewRepo.Update(ctx, tx, review); err != nil {
			return err
		}

		if review.Rating == oldRating || product.NumberOfReviews == 0 {
			return nil
		}

		average := (product.StarAverage*float64(product.NumberOfReviews) -
			float64(oldRating) + float64(review.Rating)) / float64(product.NumberOfReviews)

		return s.productRepo.UpdateReviewStats(ctx, tx, review.ProductID, average, product.NumberOfReviews)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("review_id", id.String()).Msg("review updated")
	return review, nil
}

// Delete deletes a review; owners and admins only.
func (s *reviewService) Delete(ctx context.Context, principal *model.Principal, id uuid.UUID) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return model.ErrReviewNotFound
	}
	if review.UserID != principal.ID && principal.Role != model.RoleAdmin {
		return model.ErrForbidden
	}

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		product, err := s.productRepo.GetForUpdate(ctx, tx, review.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrProductNotFound
		}

		if err := s.reviewRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		count := product.NumberOfReviews - 1
		var average float64
		if count > 0 {
			average = (product.StarAverage*float64(product.NumberOfReviews) -
				float64(review.Rating)) / float64(count)
		}

		return s.productRepo.UpdateReviewStats(ctx, tx, review.ProductID, average, count)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("review_id", id.String()).Msg("review deleted")
	return nil
}

// ListByProduct retrieves a product's reviews with pagination.
func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.Review, error) {
	page, limit = clampPage(page, limit)

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID, limit, (page-1)*limit)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.reviewRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
