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

// orderCodeAttempts bounds retries when a generated order code collides.
const orderCodeAttempts = 3

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	voucherRepo repository.VoucherRepository
	notifier    Notifier
	logger      zerolog.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	voucherRepo repository.VoucherRepository,
	notifier Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		voucherRepo: voucherRepo,
		notifier:    notifier,
		logger:      logger.With().Str("service", "order").Logger(),
		now:         time.Now,
	}
}

// Create creates an order. The total is computed from each product's static
// discount plus an optional voucher; active campaign discounts are not
// re-resolved, keeping the price shown at cart time. After the order commits,
// each product's sold counter is incremented best-effort: a failed increment
// is logged but never fails or rolls back the order.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	userID, err := parseOptionalUUID(req.UserID)
	if err != nil {
		return nil, model.Validationf(model.ErrCodeMissingField, "Invalid user id")
	}

	// Load every line's product in one batch
	productIDs := make([]uuid.UUID, len(req.Products))
	for i, item := range req.Products {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, model.Validationf(model.ErrCodeMissingField,
				"Invalid product id: %s", item.ProductID)
		}
		productIDs[i] = id
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}

	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]pricing.OrderLine, len(req.Products))
	for i, item := range req.Products {
		p, ok := byID[productIDs[i]]
		if !ok {
			return nil, model.ErrProductNotFound
		}
		lines[i] = pricing.OrderLine{Product: p, Quantity: item.Quantity}
	}

	now := s.now()

	var appliedVoucher *model.Voucher
	if req.VoucherCode != nil && *req.VoucherCode != "" {
		appliedVoucher, err = s.voucherRepo.GetByCode(ctx, *req.VoucherCode)
		if err != nil {
			return nil, fmt.Errorf("failed to look up voucher: %w", err)
		}
		if appliedVoucher == nil {
			return nil, model.ErrVoucherNotFound
		}
	}

	total, err := pricing.ComputeTotal(lines, appliedVoucher, now)
	if err != nil {
		s.logger.Warn().Err(err).Msg("order total computation rejected")
		return nil, err
	}

	order := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		AnonymousID:   req.AnonymousID,
		TotalAmount:   total.TotalAmount,
		Status:        model.OrderPending,
		PaymentStatus: model.PaymentPending,
		PaymentMethod: req.PaymentMethod,
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		UserPhone:     req.UserPhone,
		District:      req.District,
		Address:       req.Address,
		Note:          req.Note,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = model.PaymentCOD
	}
	if appliedVoucher != nil {
		order.VoucherID = &appliedVoucher.ID
	}

	items := make([]model.OrderItem, len(req.Products))
	for i, item := range req.Products {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: productIDs[i],
			Quantity:  item.Quantity,
		}
	}

	if err := s.persistOrder(ctx, order, items, now); err != nil {
		return nil, err
	}

	// Best-effort counters after the order is durable
	for _, item := range items {
		if err := s.productRepo.IncrementQuantitySold(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error().Err(err).
				Str("order_id", order.ID.String()).
				Str("product_id", item.ProductID.String()).
				Msg("failed to increment quantity sold")
		}
	}

	s.notifier.Notify(ctx, Notification{
		Type:    "ORDER",
		Message: fmt.Sprintf("New order #%s created by %s", order.OrderCode, orderActor(order)),
		Roles:   []model.Role{model.RoleAdmin, model.RoleProductManager},
	})

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_code", order.OrderCode).
		Float64("total_amount", order.TotalAmount).
		Int("item_count", len(items)).
		Msg("order created")

	return &model.OrderResponse{
		Order:    order,
		Items:    items,
		Products: products,
	}, nil
}

// persistOrder writes the order and its items in one transaction, retrying
// with a fresh order code when the generated one collides.
func (s *orderService) persistOrder(ctx context.Context, order *model.Order, items []model.OrderItem, now time.Time) error {
	var err error
	for attempt := 0; attempt < orderCodeAttempts; attempt++ {
		order.OrderCode = generateOrderCode(now)

		err = s.writeOrderTx(ctx, order, items)
		if err == nil {
			return nil
		}
		if !repository.IsUniqueViolation(err) {
			s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
			return fmt.Errorf("failed to create order: %w", err)
		}

		s.logger.Warn().
			Str("order_code", order.OrderCode).
			Int("attempt", attempt+1).
			Msg("order code collision, retrying")
	}
	return fmt.Errorf("failed to create order: %w", err)
}

func (s *orderService) writeOrderTx(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return err
	}
	if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID retrieves an order with its items and product details.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}

	return &model.OrderResponse{
		Order:    order,
		Items:    items,
		Products: products,
	}, nil
}

// List retrieves orders with pagination.
func (s *orderService) List(ctx context.Context, status *model.OrderStatus, keyword string, page, limit int) ([]model.Order, *Pagination, error) {
	page, limit = clampPage(page, limit)

	filter := repository.OrderFilter{
		Status:  status,
		Keyword: keyword,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, nil, fmt.Errorf("failed to list orders: %w", err)
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count orders: %w", err)
	}

	return orders, newPagination(page, limit, total), nil
}

// UpdateStatus moves an order along its forward-only status machine.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	if !order.Status.CanTransition(status) {
		return model.NewDomainError(model.KindState, model.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot change order status from %s to %s", order.Status, status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Msg("order status updated")

	return nil
}

// UpdatePaymentStatus updates an order's payment status.
func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	switch status {
	case model.PaymentPaid, model.PaymentFailed, model.PaymentPending:
	default:
		return model.Validationf(model.ErrCodeMissingField, "Invalid payment status: %s", status)
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("payment_status", string(status)).
		Msg("order payment status updated")

	return nil
}

func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.Validationf(model.ErrCodeMissingField, "Order request is required")
	}
	if len(req.Products) == 0 {
		return model.Validationf(model.ErrCodeMissingField, "Order must contain at least one product")
	}
	for i, item := range req.Products {
		if item.ProductID == "" {
			return model.Validationf(model.ErrCodeMissingField, "Item %d: product id is required", i)
		}
		if item.Quantity <= 0 {
			return model.ErrInvalidQuantity
		}
	}

	hasUser := req.UserID != nil && *req.UserID != ""
	hasAnon := req.AnonymousID != nil && *req.AnonymousID != ""
	if hasUser == hasAnon {
		return model.Validationf(model.ErrCodeMissingField,
			"Exactly one of userId and anonymousId is required")
	}

	if req.UserName == "" || req.UserPhone == "" || req.District == "" || req.Address == "" {
		return model.Validationf(model.ErrCodeMissingField, "Shipping information is incomplete")
	}

	return nil
}

func orderActor(order *model.Order) string {
	if order.UserName != "" {
		return order.UserName
	}
	if order.AnonymousID != nil {
		return *order.AnonymousID
	}
	return "unknown"
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
