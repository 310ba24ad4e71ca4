package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/pricing"
	"github.com/minhnion/WellHomeKitchen-BE/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		logger:      logger.With().Str("service", "product").Logger(),
		now:         time.Now,
	}
}

// List retrieves decorated products with pagination. The whole page resolves
// its discounts with one active-window query.
func (s *productService) List(ctx context.Context, categoryID *uuid.UUID, page, limit int) ([]model.ProductView, *Pagination, error) {
	page, limit = clampPage(page, limit)

	filter := repository.ProductFilter{
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, nil, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count products: %w", err)
	}

	views, err := s.decorate(ctx, products)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Debug().
		Int("count", len(views)).
		Int("page", page).
		Int("limit", limit).
		Msg("retrieved products")

	return views, newPagination(page, limit, total), nil
}

// GetByID retrieves a single decorated product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	views, err := s.decorate(ctx, []model.Product{*product})
	if err != nil {
		return nil, err
	}

	return &views[0], nil
}

func (s *productService) decorate(ctx context.Context, products []model.Product) ([]model.ProductView, error) {
	if len(products) == 0 {
		return []model.ProductView{}, nil
	}

	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	entries, err := s.saleRepo.ActiveEntries(ctx, ids, s.now())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve active sales")
		return nil, fmt.Errorf("failed to resolve active sales: %w", err)
	}

	return pricing.Decorate(products, entries), nil
}
