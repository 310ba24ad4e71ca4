package pricing

import (
	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
)

// The two resolution modes are intentionally distinct and must not be
// unified: they disagree whenever overlapping campaigns discount the same
// product at different percentages.
//
//   - ResolveMaxPercent: the listing/decoration path. The highest salePercent
//     among active campaigns wins, regardless of storage order.
//   - ResolveLatestStart: the sale-detail path. The most recently started
//     campaign wins, even if an older campaign offers a deeper discount.

// ResolveMaxPercent resolves a product's discount by taking the active entry
// with the highest sale percent. Returns nil when no active campaign lists
// the product; the caller then falls back to the product's static discount.
func ResolveMaxPercent(productID uuid.UUID, entries []model.ActiveSaleEntry) *Resolution {
	var best *Resolution
	for _, e := range entriesFor(productID, entries) {
		if best == nil || e.SalePercent > best.SalePercent {
			best = resolutionFrom(e)
		}
	}
	return best
}

// ResolveLatestStart resolves a product's discount by taking the active entry
// whose campaign started most recently. Returns nil when no active campaign
// lists the product.
func ResolveLatestStart(productID uuid.UUID, entries []model.ActiveSaleEntry) *Resolution {
	var best *Resolution
	for _, e := range entriesFor(productID, entries) {
		if best == nil || e.StartAt.After(best.StartAt) {
			best = resolutionFrom(e)
		}
	}
	return best
}

func resolutionFrom(e model.ActiveSaleEntry) *Resolution {
	return &Resolution{
		SaleID:       e.SaleID,
		SaleName:     e.SaleName,
		SalePercent:  e.SalePercent,
		SaleQuantity: e.SaleQuantity,
		StartAt:      e.StartAt,
		EndAt:        e.EndAt,
	}
}
