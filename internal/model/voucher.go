package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType distinguishes percentage vouchers from fixed-amount vouchers.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Voucher is an order-level, code-activated discount. Excluded products are
// never eligible regardless of cart contents.
type Voucher struct {
	ID                uuid.UUID    `json:"id" db:"id"`
	Code              string       `json:"code" db:"code"`
	DiscountType      DiscountType `json:"discountType" db:"discount_type"`
	DiscountValue     float64      `json:"discountValue" db:"discount_value"`
	MinPurchaseAmount *float64     `json:"minPurchaseAmount,omitempty" db:"min_purchase_amount"`
	MaxDiscountAmount *float64     `json:"maxDiscountAmount,omitempty" db:"max_discount_amount"`
	ExcludedProducts  []uuid.UUID  `json:"excludedProducts"`
	StartDate         time.Time    `json:"startDate" db:"start_date"`
	EndDate           time.Time    `json:"endDate" db:"end_date"`
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time    `json:"updatedAt" db:"updated_at"`
}

// VoucherRequest is the payload for creating or updating a voucher.
type VoucherRequest struct {
	Code              string       `json:"code"`
	DiscountType      DiscountType `json:"discountType"`
	DiscountValue     float64      `json:"discountValue"`
	MinPurchaseAmount *float64     `json:"minPurchaseAmount"`
	MaxDiscountAmount *float64     `json:"maxDiscountAmount"`
	ExcludedProducts  []string     `json:"excludedProducts"`
	StartDate         time.Time    `json:"startDate"`
	EndDate           time.Time    `json:"endDate"`
}

// ValidateVoucherRequest is the payload for POST /api/vouchers/validate.
type ValidateVoucherRequest struct {
	Code       string   `json:"code"`
	CartTotal  float64  `json:"cartTotal"`
	ProductIDs []string `json:"productIds"`
}

// VoucherValidation is the outcome of a successful voucher validation.
type VoucherValidation struct {
	Voucher        *Voucher `json:"voucher"`
	DiscountAmount float64  `json:"discountAmount"`
	FinalAmount    float64  `json:"finalAmount"`
}
