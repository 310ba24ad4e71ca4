// Seeds a development database with a small kitchenware catalogue, one
// running sale occasion and a couple of vouchers. Run against an empty
// database; re-running duplicates nothing because inserts use fixed ids.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/config"
	"github.com/minhnion/WellHomeKitchen-BE/internal/database"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, zerolog.Nop())
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer pool.Close()

	if err := database.ApplySchema(ctx, pool); err != nil {
		return err
	}

	kitchenware := uuid.MustParse("7f1a1111-0000-4000-8000-000000000001")
	tableware := uuid.MustParse("7f1a1111-0000-4000-8000-000000000002")

	categories := []struct {
		id   uuid.UUID
		name string
	}{
		{kitchenware, "Kitchenware"},
		{tableware, "Tableware"},
	}
	for _, c := range categories {
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			c.id, c.name)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.name, err)
		}
	}

	products := []struct {
		id         uuid.UUID
		name       string
		slug       string
		sku        string
		price      float64
		discount   float64
		categoryID uuid.UUID
	}{
		{uuid.MustParse("9b2c2222-0000-4000-8000-000000000001"), "Cast Iron Skillet 26cm", "cast-iron-skillet-26cm", "SKU-CIS-26", 890000, 0, kitchenware},
		{uuid.MustParse("9b2c2222-0000-4000-8000-000000000002"), "Stainless Stock Pot 8L", "stainless-stock-pot-8l", "SKU-SSP-08", 1250000, 10, kitchenware},
		{uuid.MustParse("9b2c2222-0000-4000-8000-000000000003"), "Ceramic Dinner Plate Set", "ceramic-dinner-plate-set", "SKU-CDP-06", 540000, 0, tableware},
		{uuid.MustParse("9b2c2222-0000-4000-8000-000000000004"), "Bamboo Serving Tray", "bamboo-serving-tray", "SKU-BST-01", 320000, 5, tableware},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, slug, sku, price, discount_percent, category_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO NOTHING`,
			p.id, p.name, p.slug, p.sku, p.price, p.discount, p.categoryID)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
	}

	saleID := uuid.MustParse("5d3e3333-0000-4000-8000-000000000001")
	now := time.Now()
	_, err = pool.Exec(ctx,
		`INSERT INTO sale_occasions (id, name, slug, start_at, end_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		saleID, "Grand Opening", "grand-opening", now.Add(-24*time.Hour), now.Add(6*24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to seed sale occasion: %w", err)
	}

	saleEntries := []struct {
		productID uuid.UUID
		quantity  int
		percent   float64
	}{
		{products[0].id, 50, 20},
		{products[2].id, 30, 15},
	}
	for _, e := range saleEntries {
		_, err := pool.Exec(ctx,
			`INSERT INTO sale_products (id, sale_id, product_id, sale_quantity, sale_percent)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (sale_id, product_id) DO NOTHING`,
			uuid.New(), saleID, e.productID, e.quantity, e.percent)
		if err != nil {
			return fmt.Errorf("failed to seed sale entry: %w", err)
		}
	}

	minPurchase := 500000.0
	maxDiscount := 100000.0
	vouchers := []struct {
		id          uuid.UUID
		code        string
		vtype       string
		value       float64
		minPurchase *float64
		maxDiscount *float64
	}{
		{uuid.MustParse("1a4f4444-0000-4000-8000-000000000001"), "WELCOME10", "percentage", 10, &minPurchase, &maxDiscount},
		{uuid.MustParse("1a4f4444-0000-4000-8000-000000000002"), "FREESHIP30K", "fixed", 30000, nil, nil},
	}
	for _, v := range vouchers {
		_, err := pool.Exec(ctx,
			`INSERT INTO vouchers (id, code, discount_type, discount_value, min_purchase_amount, max_discount_amount, start_date, end_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO NOTHING`,
			v.id, v.code, v.vtype, v.value, v.minPurchase, v.maxDiscount,
			now.Add(-24*time.Hour), now.Add(30*24*time.Hour))
		if err != nil {
			return fmt.Errorf("failed to seed voucher %s: %w", v.code, err)
		}
	}

	fmt.Println("Seed data inserted successfully")
	return nil
}
