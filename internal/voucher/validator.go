// Package voucher validates order-level voucher codes and computes their
// discount amounts. Lookup by code is the caller's responsibility; this
// package only decides applicability and amounts.
package voucher

import (
	"fmt"
	"strconv"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
)

// Validate runs the full applicability check against a cart and computes the
// resulting discount. Checks run in order and each failure is a distinct
// domain error: time window, minimum purchase, product exclusions.
func Validate(v *model.Voucher, cartTotal float64, productIDs []uuid.UUID, at time.Time) (*model.VoucherValidation, error) {
	if at.Before(v.StartDate) || at.After(v.EndDate) {
		return nil, model.ErrVoucherExpired
	}

	if v.MinPurchaseAmount != nil && cartTotal < *v.MinPurchaseAmount {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeBelowMinPurchase,
			fmt.Sprintf("A minimum purchase of %s is required to use this voucher", FormatVND(*v.MinPurchaseAmount)))
	}

	if len(v.ExcludedProducts) > 0 {
		excluded := make(map[uuid.UUID]struct{}, len(v.ExcludedProducts))
		for _, id := range v.ExcludedProducts {
			excluded[id] = struct{}{}
		}
		for _, id := range productIDs {
			if _, ok := excluded[id]; ok {
				return nil, model.ErrExcludedProduct
			}
		}
	}

	discount := Discount(v, cartTotal)

	return &model.VoucherValidation{
		Voucher:        v,
		DiscountAmount: discount,
		FinalAmount:    cartTotal - discount,
	}, nil
}

// Discount computes the discount amount for a cart total. Percentage
// discounts are clamped to MaxDiscountAmount when set; fixed discounts never
// exceed the cart total, so the final amount cannot go negative. The result
// is additionally capped at cartTotal to guard against a misconfigured
// MaxDiscountAmount above the cart total.
func Discount(v *model.Voucher, cartTotal float64) float64 {
	var discount float64
	switch v.DiscountType {
	case model.DiscountPercentage:
		discount = cartTotal * v.DiscountValue / 100
		if v.MaxDiscountAmount != nil && discount > *v.MaxDiscountAmount {
			discount = *v.MaxDiscountAmount
		}
	case model.DiscountFixed:
		discount = v.DiscountValue
	}
	if discount > cartTotal {
		discount = cartTotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// FormatVND renders an amount as Vietnamese currency with dot thousands
// separators, e.g. 1500000 -> "1.500.000 VNĐ".
func FormatVND(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 0, 64)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}

	if neg {
		return "-" + string(out) + " VNĐ"
	}
	return string(out) + " VNĐ"
}
