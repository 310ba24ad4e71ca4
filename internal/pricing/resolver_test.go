package pricing

import (
	"testing"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveAt(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{"before window", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"inside window", start.Add(15 * 24 * time.Hour), true},
		{"exactly at end", end, true},
		{"after window", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ActiveAt(start, end, tt.at))
		})
	}
}

func TestResolveMaxPercent(t *testing.T) {
	productID := uuid.New()
	otherID := uuid.New()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	saleA := uuid.New()
	saleB := uuid.New()

	entries := []model.ActiveSaleEntry{
		{SaleID: saleA, SaleName: "Sale A", StartAt: base, EndAt: base.Add(72 * time.Hour), ProductID: productID, SalePercent: 20, SaleQuantity: 10},
		{SaleID: saleB, SaleName: "Sale B", StartAt: base.Add(time.Hour), EndAt: base.Add(48 * time.Hour), ProductID: productID, SalePercent: 30, SaleQuantity: 5},
		{SaleID: saleA, SaleName: "Sale A", StartAt: base, EndAt: base.Add(72 * time.Hour), ProductID: otherID, SalePercent: 50, SaleQuantity: 3},
	}

	res := ResolveMaxPercent(productID, entries)
	require.NotNil(t, res)
	assert.Equal(t, saleB, res.SaleID)
	assert.Equal(t, 30.0, res.SalePercent)
	assert.Equal(t, 5, res.SaleQuantity)
}

func TestResolveMaxPercent_NoEntries(t *testing.T) {
	res := ResolveMaxPercent(uuid.New(), nil)
	assert.Nil(t, res)
}

func TestResolveMaxPercent_IgnoresOtherProducts(t *testing.T) {
	productID := uuid.New()
	entries := []model.ActiveSaleEntry{
		{SaleID: uuid.New(), ProductID: uuid.New(), SalePercent: 90},
	}

	assert.Nil(t, ResolveMaxPercent(productID, entries))
}

func TestResolveLatestStart(t *testing.T) {
	productID := uuid.New()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	older := uuid.New()
	newer := uuid.New()

	// The older campaign offers the deeper discount; latest-start mode must
	// still pick the newer one.
	entries := []model.ActiveSaleEntry{
		{SaleID: older, SaleName: "Older", StartAt: base, EndAt: base.Add(96 * time.Hour), ProductID: productID, SalePercent: 40},
		{SaleID: newer, SaleName: "Newer", StartAt: base.Add(24 * time.Hour), EndAt: base.Add(72 * time.Hour), ProductID: productID, SalePercent: 10},
	}

	res := ResolveLatestStart(productID, entries)
	require.NotNil(t, res)
	assert.Equal(t, newer, res.SaleID)
	assert.Equal(t, 10.0, res.SalePercent)
}

func TestResolveModes_DivergeOnOverlap(t *testing.T) {
	productID := uuid.New()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	entries := []model.ActiveSaleEntry{
		{SaleID: uuid.New(), StartAt: base, EndAt: base.Add(96 * time.Hour), ProductID: productID, SalePercent: 35},
		{SaleID: uuid.New(), StartAt: base.Add(12 * time.Hour), EndAt: base.Add(48 * time.Hour), ProductID: productID, SalePercent: 15},
	}

	maxRes := ResolveMaxPercent(productID, entries)
	latestRes := ResolveLatestStart(productID, entries)

	require.NotNil(t, maxRes)
	require.NotNil(t, latestRes)
	assert.Equal(t, 35.0, maxRes.SalePercent)
	assert.Equal(t, 15.0, latestRes.SalePercent)
	assert.NotEqual(t, maxRes.SaleID, latestRes.SaleID)
}
