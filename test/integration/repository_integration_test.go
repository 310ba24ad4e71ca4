package integration

import (
	"context"
	"testing"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("List filters by category", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		kitchen := SeedCategory(t, testDB.Pool, "Kitchenware")
		table := SeedCategory(t, testDB.Pool, "Tableware")
		SeedProduct(t, testDB.Pool, "Skillet", 450000, &kitchen)
		SeedProduct(t, testDB.Pool, "Ladle", 85000, &kitchen)
		SeedProduct(t, testDB.Pool, "Plate Set", 320000, &table)

		products, err := repo.List(ctx, repository.ProductFilter{CategoryID: &kitchen, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, products, 2)

		total, err := repo.Count(ctx, repository.ProductFilter{CategoryID: &kitchen})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("GetByID excludes soft-deleted rows", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.Name, got.Name)

		_, err = testDB.Pool.Exec(ctx, "UPDATE products SET is_delete = TRUE WHERE id = $1", p.ID)
		require.NoError(t, err)

		got, err = repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("IncrementQuantitySold accumulates", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)

		require.NoError(t, repo.IncrementQuantitySold(ctx, p.ID, 3))
		require.NoError(t, repo.IncrementQuantitySold(ctx, p.ID, 2))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.QuantitySold)
	})

	t.Run("GetForUpdate and UpdateReviewStats round-trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		locked, err := repo.GetForUpdate(ctx, tx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, locked)

		require.NoError(t, repo.UpdateReviewStats(ctx, tx, p.ID, 4.5, 2))
		require.NoError(t, tx.Commit(ctx))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.5, got.StarAverage)
		assert.Equal(t, 2, got.NumberOfReviews)
	})
}

func TestSaleRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewSaleRepository(testDB.Pool, logger)

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	seedSale := func(t *testing.T, name, slug string, start, end time.Time, entries ...model.SaleEntry) *model.SaleOccasion {
		t.Helper()
		sale := &model.SaleOccasion{
			ID:       uuid.New(),
			Name:     name,
			Slug:     slug,
			StartAt:  start,
			EndAt:    end,
			Products: entries,
		}
		require.NoError(t, repo.Create(ctx, sale))
		return sale
	}

	t.Run("ActiveEntries window is inclusive at both ends", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)

		start := now.Add(-time.Hour)
		end := now.Add(time.Hour)
		seedSale(t, "Flash Sale", "flash-sale", start, end,
			model.SaleEntry{ProductID: p.ID, SaleQuantity: 10, SalePercent: 20})

		for _, at := range []time.Time{start, now, end} {
			entries, err := repo.ActiveEntries(ctx, nil, at)
			require.NoError(t, err)
			require.Len(t, entries, 1, "expected entry active at %s", at)
			assert.Equal(t, 20.0, entries[0].SalePercent)
		}

		entries, err := repo.ActiveEntries(ctx, nil, end.Add(time.Second))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("ActiveEntries restricts to given products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		a := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)
		b := SeedProduct(t, testDB.Pool, "Ladle", 85000, nil)

		seedSale(t, "Flash Sale", "flash-sale", now.Add(-time.Hour), now.Add(time.Hour),
			model.SaleEntry{ProductID: a.ID, SaleQuantity: 10, SalePercent: 20},
			model.SaleEntry{ProductID: b.ID, SaleQuantity: 5, SalePercent: 15})

		entries, err := repo.ActiveEntries(ctx, []uuid.UUID{b.ID}, now)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, b.ID, entries[0].ProductID)
	})

	t.Run("duplicate slug is a unique violation", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)

		seedSale(t, "Flash Sale", "flash-sale", now, now.Add(time.Hour),
			model.SaleEntry{ProductID: p.ID, SalePercent: 20})

		err := repo.Create(ctx, &model.SaleOccasion{
			ID:      uuid.New(),
			Name:    "Other Sale",
			Slug:    "flash-sale",
			StartAt: now.Add(2 * time.Hour),
			EndAt:   now.Add(3 * time.Hour),
		})
		require.Error(t, err)
		assert.True(t, repository.IsUniqueViolation(err))
	})

	t.Run("OverlappingProducts detects intersecting claims", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)

		existing := seedSale(t, "Flash Sale", "flash-sale", now, now.Add(2*time.Hour),
			model.SaleEntry{ProductID: p.ID, SalePercent: 20})

		// A different campaign over an intersecting window conflicts.
		conflicts, err := repo.OverlappingProducts(ctx, uuid.New(), []uuid.UUID{p.ID},
			now.Add(time.Hour), now.Add(3*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{p.ID}, conflicts)

		// The campaign being updated is excluded from its own check.
		conflicts, err = repo.OverlappingProducts(ctx, existing.ID, []uuid.UUID{p.ID},
			now.Add(time.Hour), now.Add(3*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, conflicts)

		// Disjoint windows never conflict.
		conflicts, err = repo.OverlappingProducts(ctx, uuid.New(), []uuid.UUID{p.ID},
			now.Add(3*time.Hour), now.Add(4*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("Update rewrites entries", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		a := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)
		b := SeedProduct(t, testDB.Pool, "Ladle", 85000, nil)

		sale := seedSale(t, "Flash Sale", "flash-sale", now, now.Add(time.Hour),
			model.SaleEntry{ProductID: a.ID, SalePercent: 20})

		sale.Products = []model.SaleEntry{{ProductID: b.ID, SaleQuantity: 3, SalePercent: 30}}
		require.NoError(t, repo.Update(ctx, sale))

		got, err := repo.GetByID(ctx, sale.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Products, 1)
		assert.Equal(t, b.ID, got.Products[0].ProductID)
		assert.Equal(t, 30.0, got.Products[0].SalePercent)
	})
}

func TestVoucherRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewVoucherRepository(testDB.Pool, logger)

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Create and GetByCode round-trip exclusions", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		excluded := SeedProduct(t, testDB.Pool, "Gift Card", 100000, nil)

		minPurchase := 500000.0
		v := &model.Voucher{
			ID:                uuid.New(),
			Code:              "WELCOME10",
			DiscountType:      model.DiscountPercentage,
			DiscountValue:     10,
			MinPurchaseAmount: &minPurchase,
			ExcludedProducts:  []uuid.UUID{excluded.ID},
			StartDate:         now.Add(-time.Hour),
			EndDate:           now.Add(24 * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, v))

		got, err := repo.GetByCode(ctx, "WELCOME10")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.DiscountPercentage, got.DiscountType)
		require.NotNil(t, got.MinPurchaseAmount)
		assert.Equal(t, 500000.0, *got.MinPurchaseAmount)
		assert.Equal(t, []uuid.UUID{excluded.ID}, got.ExcludedProducts)
	})

	t.Run("duplicate code is a unique violation", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		base := &model.Voucher{
			ID:            uuid.New(),
			Code:          "WELCOME10",
			DiscountType:  model.DiscountFixed,
			DiscountValue: 30000,
			StartDate:     now,
			EndDate:       now.Add(time.Hour),
		}
		require.NoError(t, repo.Create(ctx, base))

		dup := *base
		dup.ID = uuid.New()
		err := repo.Create(ctx, &dup)
		require.Error(t, err)
		assert.True(t, repository.IsUniqueViolation(err))
	})

	t.Run("List with active filter excludes expired vouchers", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		live := &model.Voucher{
			ID: uuid.New(), Code: "LIVE", DiscountType: model.DiscountFixed,
			DiscountValue: 10000, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour),
		}
		expired := &model.Voucher{
			ID: uuid.New(), Code: "EXPIRED", DiscountType: model.DiscountFixed,
			DiscountValue: 10000, StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, live))
		require.NoError(t, repo.Create(ctx, expired))

		vouchers, err := repo.List(ctx, repository.VoucherFilter{ActiveAt: &now, Limit: 10})
		require.NoError(t, err)
		require.Len(t, vouchers, 1)
		assert.Equal(t, "LIVE", vouchers[0].Code)

		vouchers, err = repo.List(ctx, repository.VoucherFilter{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, vouchers, 2)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	anonymousID := "anon-123"
	newOrder := func(code string) *model.Order {
		return &model.Order{
			ID:            uuid.New(),
			AnonymousID:   &anonymousID,
			TotalAmount:   360000,
			Status:        model.OrderPending,
			PaymentStatus: model.PaymentPending,
			PaymentMethod: model.PaymentCOD,
			OrderCode:     code,
			UserName:      "Nguyen Van A",
			UserPhone:     "0901234567",
			District:      "District 1",
			Address:       "12 Le Loi",
		}
	}

	createOrder := func(t *testing.T, order *model.Order, items []model.OrderItem) {
		t.Helper()
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		if len(items) > 0 {
			require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
		}
		require.NoError(t, tx.Commit(ctx))
	}

	t.Run("Create and GetByID round-trip with items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)

		order := newOrder("F261501")
		items := []model.OrderItem{{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  2,
		}}
		createOrder(t, order, items)

		got, gotItems, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "F261501", got.OrderCode)
		assert.Equal(t, 360000.0, got.TotalAmount)
		require.Len(t, gotItems, 1)
		assert.Equal(t, 2, gotItems[0].Quantity)
	})

	t.Run("duplicate order code is a unique violation", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		createOrder(t, newOrder("F261502"), nil)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = repo.CreateOrder(ctx, tx, newOrder("F261502"))
		require.Error(t, err)
		assert.True(t, repository.IsUniqueViolation(err))
	})

	t.Run("UpdateStatus persists", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder("F261503")
		createOrder(t, order, nil)

		require.NoError(t, repo.UpdateStatus(ctx, order.ID, model.OrderShipped))
		require.NoError(t, repo.UpdatePaymentStatus(ctx, order.ID, model.PaymentPaid))

		got, _, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderShipped, got.Status)
		assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
	})

	t.Run("List filters by status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		pending := newOrder("F261504")
		createOrder(t, pending, nil)
		shipped := newOrder("F261505")
		createOrder(t, shipped, nil)
		require.NoError(t, repo.UpdateStatus(ctx, shipped.ID, model.OrderShipped))

		status := model.OrderShipped
		orders, err := repo.List(ctx, repository.OrderFilter{Status: &status, Limit: 10})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, shipped.ID, orders[0].ID)
	})
}

func TestReviewRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewReviewRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("one review per product and user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)
		userID := uuid.New()

		create := func(review *model.Review) error {
			tx, err := repo.BeginTx(ctx)
			require.NoError(t, err)
			defer tx.Rollback(ctx)

			if err := repo.Create(ctx, tx, review); err != nil {
				return err
			}
			return tx.Commit(ctx)
		}

		first := &model.Review{ID: uuid.New(), ProductID: p.ID, UserID: userID, Rating: 5, Comment: "Great"}
		require.NoError(t, create(first))

		dup := &model.Review{ID: uuid.New(), ProductID: p.ID, UserID: userID, Rating: 1, Comment: "Changed my mind"}
		err := create(dup)
		require.Error(t, err)
		assert.True(t, repository.IsUniqueViolation(err))

		exists := func(productID, userID uuid.UUID) bool {
			tx, err := repo.BeginTx(ctx)
			require.NoError(t, err)
			defer tx.Rollback(ctx)

			ok, err := repo.ExistsForProductUser(ctx, tx, productID, userID)
			require.NoError(t, err)
			return ok
		}

		assert.True(t, exists(p.ID, userID))
		assert.False(t, exists(p.ID, uuid.New()))
	})

	t.Run("ListByProduct returns newest first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		p := SeedProduct(t, testDB.Pool, "Skillet", 450000, nil)

		for i, rating := range []int{3, 4, 5} {
			tx, err := repo.BeginTx(ctx)
			require.NoError(t, err)

			review := &model.Review{ID: uuid.New(), ProductID: p.ID, UserID: uuid.New(), Rating: rating}
			require.NoError(t, repo.Create(ctx, tx, review))
			require.NoError(t, tx.Commit(ctx))

			// Distinct created_at values keep the ordering deterministic.
			_, err = testDB.Pool.Exec(ctx,
				"UPDATE reviews SET created_at = now() + make_interval(secs => $1) WHERE id = $2",
				i, review.ID)
			require.NoError(t, err)
		}

		reviews, err := repo.ListByProduct(ctx, p.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, reviews, 3)
		assert.Equal(t, 5, reviews[0].Rating)
	})
}
