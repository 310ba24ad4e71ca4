package service

import (
	"context"
	"testing"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductServiceForTest(productRepo *MockProductRepository, saleRepo *MockSaleRepository) *productService {
	svc := NewProductService(productRepo, saleRepo, zerolog.Nop()).(*productService)
	svc.now = func() time.Time { return saleTestNow }
	return svc
}

func TestProductService_List_DecoratesPage(t *testing.T) {
	ctx := context.Background()

	discounted := model.Product{ID: uuid.New(), Name: "Cast Iron Pan", Price: 200, DiscountPercent: 5}
	plain := model.Product{ID: uuid.New(), Name: "Wooden Spoon", Price: 50, DiscountPercent: 10}

	productRepo := new(MockProductRepository)
	saleRepo := new(MockSaleRepository)
	svc := newProductServiceForTest(productRepo, saleRepo)

	productRepo.On("List", ctx, mock.AnythingOfType("repository.ProductFilter")).
		Return([]model.Product{discounted, plain}, nil)
	productRepo.On("Count", ctx, mock.AnythingOfType("repository.ProductFilter")).Return(2, nil)

	// One window query covers the whole page.
	saleRepo.On("ActiveEntries", ctx, []uuid.UUID{discounted.ID, plain.ID}, saleTestNow).
		Return([]model.ActiveSaleEntry{
			{
				SaleID:      uuid.New(),
				ProductID:   discounted.ID,
				SalePercent: 25,
				StartAt:     saleTestNow.Add(-time.Hour),
				EndAt:       saleTestNow.Add(time.Hour),
			},
		}, nil).
		Once()

	views, pagination, err := svc.List(ctx, nil, 1, 10)

	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, views[0].IsInSale)
	assert.Equal(t, 25.0, views[0].DiscountPercent)
	assert.False(t, views[1].IsInSale)
	assert.Equal(t, 10.0, views[1].DiscountPercent)

	assert.Equal(t, 2, pagination.Total)
	saleRepo.AssertExpectations(t)
}

func TestProductService_List_PassesCategoryFilter(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	productRepo := new(MockProductRepository)
	saleRepo := new(MockSaleRepository)
	svc := newProductServiceForTest(productRepo, saleRepo)

	matchCategory := mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == categoryID
	})
	productRepo.On("List", ctx, matchCategory).Return([]model.Product{}, nil)
	productRepo.On("Count", ctx, matchCategory).Return(0, nil)

	views, pagination, err := svc.List(ctx, &categoryID, 1, 10)

	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Equal(t, 0, pagination.Total)
	// An empty page never hits the sale window query.
	saleRepo.AssertNotCalled(t, "ActiveEntries")
}

func TestProductService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("decorated hit", func(t *testing.T) {
		product := model.Product{ID: uuid.New(), Name: "Dutch Oven", Price: 500, DiscountPercent: 5}

		productRepo := new(MockProductRepository)
		saleRepo := new(MockSaleRepository)
		svc := newProductServiceForTest(productRepo, saleRepo)

		productRepo.On("GetByID", ctx, product.ID).Return(&product, nil)
		saleRepo.On("ActiveEntries", ctx, []uuid.UUID{product.ID}, saleTestNow).
			Return([]model.ActiveSaleEntry{}, nil)

		view, err := svc.GetByID(ctx, product.ID)

		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, product.ID, view.ID)
		assert.False(t, view.IsInSale)
		assert.Equal(t, 5.0, view.DiscountPercent)
	})

	t.Run("missing product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		saleRepo := new(MockSaleRepository)
		svc := newProductServiceForTest(productRepo, saleRepo)

		id := uuid.New()
		productRepo.On("GetByID", ctx, id).Return(nil, nil)

		view, err := svc.GetByID(ctx, id)

		assert.Nil(t, view)
		assert.Equal(t, model.ErrProductNotFound, err)
		saleRepo.AssertNotCalled(t, "ActiveEntries")
	})
}
