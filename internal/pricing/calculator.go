package pricing

import (
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/voucher"

	"github.com/google/uuid"
)

// OrderLine pairs a product with an ordered quantity.
type OrderLine struct {
	Product  model.Product
	Quantity int
}

// LineTotal is the priced result for one order line.
type LineTotal struct {
	ProductID uuid.UUID
	UnitPrice float64
	Quantity  int
	Subtotal  float64
}

// OrderTotal is the priced result for a whole order.
type OrderTotal struct {
	Lines           []LineTotal
	Subtotal        float64
	VoucherDiscount float64
	TotalAmount     float64
}

// ComputeTotal prices an order. Each line uses the product's static discount;
// campaign discounts are deliberately not re-resolved here, preserving the
// price shown at cart time. An optional voucher is applied to the accumulated
// pre-voucher total through the validator's compute path, reusing its minimum
// purchase and exclusion checks.
func ComputeTotal(lines []OrderLine, v *model.Voucher, at time.Time) (*OrderTotal, error) {
	total := &OrderTotal{
		Lines: make([]LineTotal, 0, len(lines)),
	}

	for _, line := range lines {
		unit := line.Product.Price * (1 - line.Product.DiscountPercent/100)
		subtotal := unit * float64(line.Quantity)

		total.Lines = append(total.Lines, LineTotal{
			ProductID: line.Product.ID,
			UnitPrice: unit,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		total.Subtotal += subtotal
	}

	total.TotalAmount = total.Subtotal

	if v != nil {
		productIDs := make([]uuid.UUID, len(lines))
		for i, line := range lines {
			productIDs[i] = line.Product.ID
		}

		validation, err := voucher.Validate(v, total.Subtotal, productIDs, at)
		if err != nil {
			return nil, err
		}

		total.VoucherDiscount = validation.DiscountAmount
		total.TotalAmount = validation.FinalAmount
	}

	return total, nil
}
