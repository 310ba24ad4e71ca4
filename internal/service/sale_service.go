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

// saleService implements SaleService.
type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSaleService creates a new sale occasion service.
func NewSaleService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, logger zerolog.Logger) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "sale").Logger(),
		now:         time.Now,
	}
}

// GetAll retrieves all sale occasions, newest start first.
func (s *saleService) GetAll(ctx context.Context) ([]model.SaleOccasion, error) {
	sales, err := s.saleRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get sale occasions")
		return nil, fmt.Errorf("failed to get sale occasions: %w", err)
	}
	return sales, nil
}

// GetSaleProducts retrieves products discounted at the given instant.
//
// Discount resolution mode depends on the request shape: the plain listing
// uses max-percent-wins, while the category-scoped detail path uses
// latest-start-wins. The two modes disagree for overlapping campaigns and are
// both kept deliberately.
func (s *saleService) GetSaleProducts(ctx context.Context, at time.Time, categoryID *uuid.UUID, page, limit int) ([]model.SaleProductView, *Pagination, error) {
	page, limit = clampPage(page, limit)

	entries, err := s.saleRepo.ActiveEntries(ctx, nil, at)
	if err != nil {
		s.logger.Error().Err(err).Time("at", at).Msg("failed to query active sales")
		return nil, nil, fmt.Errorf("failed to query active sales: %w", err)
	}

	if len(entries) == 0 {
		return []model.SaleProductView{}, newPagination(page, limit, 0), nil
	}

	resolve := pricing.ResolveMaxPercent
	if categoryID != nil {
		resolve = pricing.ResolveLatestStart
	}

	resolved := make(map[uuid.UUID]*pricing.Resolution)
	var productIDs []uuid.UUID
	for _, e := range entries {
		if _, done := resolved[e.ProductID]; done {
			continue
		}
		resolved[e.ProductID] = resolve(e.ProductID, entries)
		productIDs = append(productIDs, e.ProductID)
	}

	filter := repository.ProductFilter{
		CategoryID: categoryID,
		ProductIDs: productIDs,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count sale products: %w", err)
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sale products: %w", err)
	}

	views := make([]model.SaleProductView, 0, len(products))
	for _, p := range products {
		res := resolved[p.ID]
		if res == nil {
			continue
		}
		views = append(views, model.SaleProductView{
			ProductID:    p.ID,
			Name:         p.Name,
			Slug:         p.Slug,
			MainImage:    p.MainImage,
			CategoryID:   p.CategoryID,
			Price:        p.Price,
			SalePercent:  res.SalePercent,
			SaleQuantity: res.SaleQuantity,
			SaleStart:    res.StartAt,
			SaleEnd:      res.EndAt,
		})
	}

	return views, newPagination(page, limit, total), nil
}

// GetSaleCategories retrieves the categories with discounted products.
func (s *saleService) GetSaleCategories(ctx context.Context, at time.Time) ([]model.Category, error) {
	categories, err := s.saleRepo.ActiveCategories(ctx, at)
	if err != nil {
		s.logger.Error().Err(err).Time("at", at).Msg("failed to get sale categories")
		return nil, fmt.Errorf("failed to get sale categories: %w", err)
	}
	return categories, nil
}

// Create creates a sale occasion after eager validation of its window and
// product entries. The unique indexes on name and slug are the authoritative
// duplicate guard.
func (s *saleService) Create(ctx context.Context, req *model.CreateSaleRequest) (*model.SaleOccasion, error) {
	if req.Name == "" || req.Slug == "" {
		return nil, model.Validationf(model.ErrCodeMissingField, "Sale name and slug are required")
	}
	if err := pricing.ValidateWindow(req.StartAt, req.EndAt); err != nil {
		return nil, err
	}

	entries, err := parseSaleEntries(req.Products)
	if err != nil {
		return nil, err
	}
	if err := pricing.ValidateEntries(entries); err != nil {
		return nil, err
	}

	if err := s.checkProductsExist(ctx, entries); err != nil {
		return nil, err
	}

	sale := &model.SaleOccasion{
		ID:       uuid.New(),
		Name:     req.Name,
		Slug:     req.Slug,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
		Products: entries,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewDomainError(model.KindConflict, model.ErrCodeDuplicateEntry,
				"A sale occasion with this name or slug already exists")
		}
		s.logger.Error().Err(err).Str("sale_name", req.Name).Msg("failed to create sale occasion")
		return nil, fmt.Errorf("failed to create sale occasion: %w", err)
	}

	s.logger.Info().
		Str("sale_id", sale.ID.String()).
		Str("sale_name", sale.Name).
		Int("product_count", len(sale.Products)).
		Msg("sale occasion created")

	return sale, nil
}

// Update updates a sale occasion. The temporal phase gates what may change:
// an ended campaign is immutable and a running one keeps its start time.
// Product entries may not conflict with another campaign's claim on the same
// product over an intersecting window.
func (s *saleService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateSaleRequest) (*model.SaleOccasion, error) {
	if req.StartAt == nil && req.EndAt == nil && req.Products == nil {
		return nil, model.Validationf(model.ErrCodeMissingField, "No fields to update")
	}

	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale occasion: %w", err)
	}
	if sale == nil {
		return nil, model.ErrSaleNotFound
	}

	now := s.now()
	if err := pricing.CheckUpdatable(sale, req.StartAt, now); err != nil {
		return nil, err
	}

	startAt, endAt := sale.StartAt, sale.EndAt
	if req.StartAt != nil {
		startAt = *req.StartAt
	}
	if req.EndAt != nil {
		endAt = *req.EndAt
	}
	if err := pricing.ValidateWindow(startAt, endAt); err != nil {
		return nil, err
	}

	entries := sale.Products
	if req.Products != nil {
		entries, err = parseSaleEntries(req.Products)
		if err != nil {
			return nil, err
		}
		if err := pricing.ValidateEntries(entries); err != nil {
			return nil, err
		}
		if err := s.checkProductsExist(ctx, entries); err != nil {
			return nil, err
		}
	}

	productIDs := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		productIDs[i] = e.ProductID
	}

	conflicts, err := s.saleRepo.OverlappingProducts(ctx, id, productIDs, startAt, endAt)
	if err != nil {
		return nil, fmt.Errorf("failed to check sale overlaps: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, model.Validationf(model.ErrCodeSaleOverlap,
			"Product %s is already discounted by another sale occasion in this time window", conflicts[0])
	}

	sale.StartAt = startAt
	sale.EndAt = endAt
	sale.Products = entries

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		s.logger.Error().Err(err).Str("sale_id", id.String()).Msg("failed to update sale occasion")
		return nil, fmt.Errorf("failed to update sale occasion: %w", err)
	}

	s.logger.Info().Str("sale_id", id.String()).Msg("sale occasion updated")

	return sale, nil
}

// Delete deletes a sale occasion. Only campaigns that have not started can go.
func (s *saleService) Delete(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load sale occasion: %w", err)
	}
	if sale == nil {
		return model.ErrSaleNotFound
	}

	if err := pricing.CheckDeletable(sale, s.now()); err != nil {
		return err
	}

	if err := s.saleRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("sale_id", id.String()).Msg("failed to delete sale occasion")
		return fmt.Errorf("failed to delete sale occasion: %w", err)
	}

	s.logger.Info().Str("sale_id", id.String()).Msg("sale occasion deleted")
	return nil
}

func (s *saleService) checkProductsExist(ctx context.Context, entries []model.SaleEntry) error {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to validate sale products: %w", err)
	}
	if len(products) != len(ids) {
		return model.ErrProductNotFound
	}
	return nil
}

func parseSaleEntries(reqs []model.SaleEntryRequest) ([]model.SaleEntry, error) {
	entries := make([]model.SaleEntry, 0, len(reqs))
	for _, r := range reqs {
		productID, err := uuid.Parse(r.ProductID)
		if err != nil {
			return nil, model.Validationf(model.ErrCodeMissingField,
				"Invalid product id: %s", r.ProductID)
		}
		entries = append(entries, model.SaleEntry{
			ProductID:    productID,
			SaleQuantity: r.SaleQuantity,
			SalePercent:  r.SalePercent,
		})
	}
	return entries, nil
}
