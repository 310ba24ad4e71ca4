package model

import (
	"time"

	"github.com/google/uuid"
)

// SaleOccasion is a time-bounded promotional campaign discounting a set of products.
// The [StartAt, EndAt] window is inclusive at both ends.
type SaleOccasion struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Slug      string      `json:"slug" db:"slug"`
	StartAt   time.Time   `json:"startAt" db:"start_at"`
	EndAt     time.Time   `json:"endAt" db:"end_at"`
	Products  []SaleEntry `json:"products"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// SaleEntry is a single product's discount within a sale occasion.
type SaleEntry struct {
	ProductID    uuid.UUID `json:"productId" db:"product_id"`
	SaleQuantity int       `json:"saleQuantity" db:"sale_quantity"`
	SalePercent  float64   `json:"salePercent" db:"sale_percent"`
}

// ActiveSaleEntry is a sale entry joined with its campaign's identity and window,
// as returned by the active-window query.
type ActiveSaleEntry struct {
	SaleID       uuid.UUID `db:"sale_id"`
	SaleName     string    `db:"sale_name"`
	StartAt      time.Time `db:"start_at"`
	EndAt        time.Time `db:"end_at"`
	ProductID    uuid.UUID `db:"product_id"`
	SaleQuantity int       `db:"sale_quantity"`
	SalePercent  float64   `db:"sale_percent"`
}

// SaleEntryRequest is a product entry in a create/update sale request.
type SaleEntryRequest struct {
	ProductID    string  `json:"productId"`
	SaleQuantity int     `json:"saleQuantity"`
	SalePercent  float64 `json:"salePercent"`
}

// CreateSaleRequest is the payload for creating a sale occasion.
type CreateSaleRequest struct {
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	StartAt  time.Time          `json:"startAt"`
	EndAt    time.Time          `json:"endAt"`
	Products []SaleEntryRequest `json:"products"`
}

// UpdateSaleRequest is the payload for updating a sale occasion.
// Nil fields are left unchanged.
type UpdateSaleRequest struct {
	StartAt  *time.Time         `json:"startAt"`
	EndAt    *time.Time         `json:"endAt"`
	Products []SaleEntryRequest `json:"products"`
}

// SaleProductView is a discounted product row for the sale listing endpoint.
type SaleProductView struct {
	ProductID    uuid.UUID  `json:"productId"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	MainImage    string     `json:"mainImage"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	Price        float64    `json:"price"`
	SalePercent  float64    `json:"salePercent"`
	SaleQuantity int        `json:"saleQuantity"`
	SaleStart    time.Time  `json:"saleStart"`
	SaleEnd      time.Time  `json:"saleEnd"`
}
