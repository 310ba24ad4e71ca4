package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalogue product.
// DiscountPercent is the static fallback discount, independent of any sale occasion.
type Product struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Slug            string     `json:"slug" db:"slug"`
	SKU             string     `json:"sku" db:"sku"`
	Description     string     `json:"description" db:"description"`
	Price           float64    `json:"price" db:"price"`
	DiscountPercent float64    `json:"discountPercent" db:"discount_percent"`
	QuantitySold    int        `json:"quantitySold" db:"quantity_sold"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
	MainImage       string     `json:"mainImage" db:"main_image"`
	IsDelete        bool       `json:"-" db:"is_delete"`
	StarAverage     float64    `json:"starAverage" db:"star_average"`
	NumberOfReviews int        `json:"numberOfReviews" db:"number_of_reviews"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// ProductView is a product projected for display with the currently effective
// discount applied. The stored product record is never mutated by decoration.
type ProductView struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Price           float64    `json:"price"`
	DiscountPercent float64    `json:"discountPercent"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty"`
	MainImage       string     `json:"mainImage"`
	StarAverage     float64    `json:"starAverage"`
	NumberOfReviews int        `json:"numberOfReviews"`
	IsInSale        bool       `json:"isInSale"`
	SaleQuantity    int        `json:"saleQuantity,omitempty"`
	SaleStart       *time.Time `json:"saleStart,omitempty"`
	SaleEnd         *time.Time `json:"saleEnd,omitempty"`
}

// Category is a read-only catalogue grouping.
type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}
