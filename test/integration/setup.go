package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/database"
	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool with
// the application schema applied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.ApplySchema(ctx, pool); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCategory inserts a category row and returns its id.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO categories (id, name) VALUES ($1, $2)", id, name)
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return id
}

// SeedProduct inserts a product row and returns it.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name string, price float64, categoryID *uuid.UUID) model.Product {
	t.Helper()

	p := model.Product{
		ID:         uuid.New(),
		Name:       name,
		Slug:       fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
		SKU:        uuid.NewString()[:12],
		Price:      price,
		CategoryID: categoryID,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, name, slug, sku, price, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Slug, p.SKU, p.Price, p.CategoryID)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return p
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"reviews",
		"order_items",
		"orders",
		"voucher_excluded_products",
		"vouchers",
		"sale_products",
		"sale_occasions",
		"products",
		"categories",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
