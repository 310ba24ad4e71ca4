package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/repository"
	"github.com/minhnion/WellHomeKitchen-BE/internal/voucher"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// voucherService implements VoucherService.
type voucherService struct {
	voucherRepo repository.VoucherRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(voucherRepo repository.VoucherRepository, logger zerolog.Logger) VoucherService {
	return &voucherService{
		voucherRepo: voucherRepo,
		logger:      logger.With().Str("service", "voucher").Logger(),
		now:         time.Now,
	}
}

// Validate checks a voucher against a cart and computes its discount.
func (s *voucherService) Validate(ctx context.Context, req *model.ValidateVoucherRequest) (*model.VoucherValidation, error) {
	if req.Code == "" {
		return nil, model.Validationf(model.ErrCodeMissingField, "Voucher code is required")
	}

	v, err := s.voucherRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up voucher: %w", err)
	}
	if v == nil {
		return nil, model.ErrVoucherNotFound
	}

	productIDs, err := parseUUIDs(req.ProductIDs)
	if err != nil {
		return nil, err
	}

	validation, err := voucher.Validate(v, req.CartTotal, productIDs, s.now())
	if err != nil {
		s.logger.Debug().
			Str("code", req.Code).
			Err(err).
			Msg("voucher validation failed")
		return nil, err
	}

	return validation, nil
}

// GetByCode retrieves a voucher by its code.
func (s *voucherService) GetByCode(ctx context.Context, code string) (*model.Voucher, error) {
	v, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	if v == nil {
		return nil, model.ErrVoucherNotFound
	}
	return v, nil
}

// List retrieves vouchers with pagination.
func (s *voucherService) List(ctx context.Context, activeOnly bool, keyword string, page, limit int) ([]model.Voucher, *Pagination, error) {
	page, limit = clampPage(page, limit)

	filter := repository.VoucherFilter{
		Keyword: keyword,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}
	if activeOnly {
		now := s.now()
		filter.ActiveAt = &now
	}

	vouchers, err := s.voucherRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list vouchers")
		return nil, nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	total, err := s.voucherRepo.Count(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count vouchers: %w", err)
	}

	return vouchers, newPagination(page, limit, total), nil
}

// Create creates a voucher after eager validation. The unique index on code
// is the authoritative duplicate guard; the pre-check only gives a friendlier
// fast path.
func (s *voucherService) Create(ctx context.Context, req *model.VoucherRequest) (*model.Voucher, error) {
	v, err := s.buildVoucher(uuid.New(), req)
	if err != nil {
		return nil, err
	}

	existing, err := s.voucherRepo.GetByCode(ctx, v.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check voucher code: %w", err)
	}
	if existing != nil {
		return nil, s.duplicateCode()
	}

	if err := s.voucherRepo.Create(ctx, v); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, s.duplicateCode()
		}
		s.logger.Error().Err(err).Str("code", v.Code).Msg("failed to create voucher")
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	s.logger.Info().Str("voucher_id", v.ID.String()).Str("code", v.Code).Msg("voucher created")
	return v, nil
}

// Update updates a voucher. Orders already created keep their snapshot totals.
func (s *voucherService) Update(ctx context.Context, id uuid.UUID, req *model.VoucherRequest) (*model.Voucher, error) {
	existing, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher: %w", err)
	}
	if existing == nil {
		return nil, model.ErrVoucherNotFound
	}

	v, err := s.buildVoucher(id, req)
	if err != nil {
		return nil, err
	}

	if err := s.voucherRepo.Update(ctx, v); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, s.duplicateCode()
		}
		s.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to update voucher")
		return nil, fmt.Errorf("failed to update voucher: %w", err)
	}

	s.logger.Info().Str("voucher_id", id.String()).Msg("voucher updated")
	return v, nil
}

// Delete deletes a voucher.
func (s *voucherService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.voucherRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("voucher_id", id.String()).Msg("voucher deleted")
	return nil
}

func (s *voucherService) buildVoucher(id uuid.UUID, req *model.VoucherRequest) (*model.Voucher, error) {
	if req.Code == "" {
		return nil, model.Validationf(model.ErrCodeMissingField, "Voucher code is required")
	}
	if req.DiscountType != model.DiscountPercentage && req.DiscountType != model.DiscountFixed {
		return nil, model.Validationf(model.ErrCodeMissingField,
			"Discount type must be percentage or fixed")
	}
	if req.DiscountValue <= 0 {
		return nil, model.Validationf(model.ErrCodeInvalidPercent,
			"Discount value must be positive")
	}
	if req.DiscountType == model.DiscountPercentage && req.DiscountValue > 100 {
		return nil, model.Validationf(model.ErrCodeInvalidPercent,
			"Percentage discount cannot exceed 100%%")
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, model.Validationf(model.ErrCodeInvalidDateRange,
			"Voucher end date must be after the start date")
	}

	excluded, err := parseUUIDs(req.ExcludedProducts)
	if err != nil {
		return nil, err
	}

	return &model.Voucher{
		ID:                id,
		Code:              req.Code,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		ExcludedProducts:  excluded,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	}, nil
}

func (s *voucherService) duplicateCode() error {
	return model.NewDomainError(model.KindConflict, model.ErrCodeDuplicateEntry,
		"A voucher with this code already exists")
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, model.Validationf(model.ErrCodeMissingField, "Invalid product id: %s", r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
