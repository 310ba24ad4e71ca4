package pricing

import (
	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
)

// Decorate projects products into display views with the effective discount
// applied. A product listed by an active campaign takes the campaign's percent
// (max-percent mode) and is flagged isInSale; otherwise the view keeps the
// product's static discount. The input products are not mutated.
//
// entries must be the active-window rows for the same product batch, so the
// whole batch resolves from a single store query.
func Decorate(products []model.Product, entries []model.ActiveSaleEntry) []model.ProductView {
	views := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		view := model.ProductView{
			ID:              p.ID,
			Name:            p.Name,
			Slug:            p.Slug,
			Price:           p.Price,
			DiscountPercent: p.DiscountPercent,
			CategoryID:      p.CategoryID,
			MainImage:       p.MainImage,
			StarAverage:     p.StarAverage,
			NumberOfReviews: p.NumberOfReviews,
		}

		if res := ResolveMaxPercent(p.ID, entries); res != nil && res.SalePercent > 0 {
			view.DiscountPercent = res.SalePercent
			view.IsInSale = true
			view.SaleQuantity = res.SaleQuantity
			start, end := res.StartAt, res.EndAt
			view.SaleStart = &start
			view.SaleEnd = &end
		}

		views = append(views, view)
	}
	return views
}
