package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order. Transitions only move
// forward: pending -> shipped -> delivered, with cancellation allowed before
// delivery.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks payment settlement independently of fulfilment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentMethod is the customer's chosen payment channel.
type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentVNPay        PaymentMethod = "vn_pay"
	PaymentMomo         PaymentMethod = "momo"
)

// Order is a customer order. TotalAmount is computed once at creation and
// bakes in the pricing snapshot; later voucher or product edits do not change it.
// Exactly one of UserID and AnonymousID identifies the owner.
type Order struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	UserID        *uuid.UUID    `json:"userId,omitempty" db:"user_id"`
	AnonymousID   *string       `json:"anonymousId,omitempty" db:"anonymous_id"`
	TotalAmount   float64       `json:"totalAmount" db:"total_amount"`
	Status        OrderStatus   `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus" db:"payment_status"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	OrderCode     string        `json:"orderCode" db:"order_code"`
	VoucherID     *uuid.UUID    `json:"voucherId,omitempty" db:"voucher_id"`
	UserName      string        `json:"userName" db:"user_name"`
	UserEmail     string        `json:"userEmail,omitempty" db:"user_email"`
	UserPhone     string        `json:"userPhone" db:"user_phone"`
	District      string        `json:"district" db:"district"`
	Address       string        `json:"address" db:"address"`
	Note          string        `json:"note,omitempty" db:"note"`
	ShippingFee   float64       `json:"shippingFee" db:"shipping_fee"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line in an order.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// OrderItemRequest is a single line in an order request.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the payload for creating an order.
type OrderRequest struct {
	UserID        *string            `json:"userId,omitempty"`
	AnonymousID   *string            `json:"anonymousId,omitempty"`
	Products      []OrderItemRequest `json:"products"`
	VoucherCode   *string            `json:"voucherCode,omitempty"`
	UserName      string             `json:"userName"`
	UserEmail     string             `json:"userEmail"`
	UserPhone     string             `json:"userPhone"`
	District      string             `json:"district"`
	Address       string             `json:"address"`
	Note          string             `json:"note"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
}

// OrderResponse is an order with its line items and product details.
type OrderResponse struct {
	Order    *Order      `json:"order"`
	Items    []OrderItem `json:"items"`
	Products []Product   `json:"products"`
}

// CanTransition reports whether an order status change is allowed.
// Delivered and cancelled are terminal.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case OrderPending:
		return to == OrderShipped || to == OrderCancelled
	case OrderShipped:
		return to == OrderDelivered || to == OrderCancelled
	default:
		return false
	}
}
