// Package pricing implements the sale-pricing engine: resolving which
// promotional discount applies to a product at a point in time, decorating
// catalogue views with effective discounts, gating sale occasion mutations by
// temporal phase, and computing order totals.
package pricing

import (
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
)

// Resolution is the effective discount resolved for a single product.
type Resolution struct {
	SaleID       uuid.UUID
	SaleName     string
	SalePercent  float64
	SaleQuantity int
	StartAt      time.Time
	EndAt        time.Time
}

// ActiveAt reports whether a campaign window contains the given instant.
// Both ends of the window are inclusive, matching the store query semantics.
func ActiveAt(startAt, endAt, at time.Time) bool {
	return !at.Before(startAt) && !at.After(endAt)
}

// entriesFor filters the active entry rows down to a single product.
func entriesFor(productID uuid.UUID, entries []model.ActiveSaleEntry) []model.ActiveSaleEntry {
	var out []model.ActiveSaleEntry
	for _, e := range entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}
