package repository

import (
	"context"
	"testing"
	"time"

	"discount-kart/internal/database"
	"discount-kart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.EnsureSchema(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func seedProducts(t *testing.T, pool *pgxpool.Pool, products []model.Product) {
	query := `
		INSERT INTO products (id, name, price, category, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, p := range products {
		_, err := pool.Exec(context.Background(), query, p.ID, p.Name, p.Price, p.Category, p.CreatedAt)
		require.NoError(t, err)
	}
}

func product(id, name, price string) model.Product {
	return model.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  "Cat1",
		CreatedAt: time.Now(),
	}
}

func TestProductRepository_GetAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())

	seedProducts(t, pool, []model.Product{
		product("P005", "Product E", "50.00"),
		product("P001", "Product A", "10.00"),
		product("P003", "Product C", "30.00"),
		product("P002", "Product B", "20.00"),
		product("P004", "Product D", "40.00"),
	})

	tests := []struct {
		name      string
		limit     int
		offset    int
		expected  int
		firstName string
	}{
		{name: "Get all products", limit: 10, offset: 0, expected: 5, firstName: "Product A"},
		{name: "First page", limit: 2, offset: 0, expected: 2, firstName: "Product A"},
		{name: "Second page", limit: 2, offset: 2, expected: 2, firstName: "Product C"},
		{name: "Offset beyond end", limit: 10, offset: 10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.GetAll(context.Background(), tt.limit, tt.offset)

			require.NoError(t, err)
			require.NotNil(t, products)
			assert.Len(t, products, tt.expected)
			if tt.firstName != "" {
				assert.Equal(t, tt.firstName, products[0].Name)
			}
		})
	}
}

func TestProductRepository_GetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())

	testProduct := product("P001", "Test Product", "99.99")
	seedProducts(t, pool, []model.Product{testProduct})

	t.Run("Product exists", func(t *testing.T) {
		p, err := repo.GetByID(context.Background(), "P001")

		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, testProduct.ID, p.ID)
		assert.Equal(t, testProduct.Name, p.Name)
		assert.True(t, testProduct.Price.Equal(p.Price), "price %s", p.Price)
		assert.Equal(t, testProduct.Category, p.Category)
	})

	t.Run("Product does not exist", func(t *testing.T) {
		p, err := repo.GetByID(context.Background(), "P999")

		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestProductRepository_GetByIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())

	seedProducts(t, pool, []model.Product{
		product("P001", "Product A", "10.00"),
		product("P002", "Product B", "20.50"),
		product("P003", "Product C", "30.00"),
	})

	tests := []struct {
		name     string
		ids      []string
		expected int
	}{
		{name: "Get multiple products", ids: []string{"P001", "P002", "P003"}, expected: 3},
		{name: "Get subset of products", ids: []string{"P001", "P003"}, expected: 2},
		{name: "Some products do not exist", ids: []string{"P001", "P999"}, expected: 1},
		{name: "No products exist", ids: []string{"P998", "P999"}, expected: 0},
		{name: "Empty ID list", ids: []string{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.GetByIDs(context.Background(), tt.ids)

			require.NoError(t, err)
			assert.Len(t, products, tt.expected)

			for i := 1; i < len(products); i++ {
				assert.LessOrEqual(t, products[i-1].Name, products[i].Name)
			}
		})
	}

	products, err := repo.GetByIDs(context.Background(), []string{"P002"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, decimal.RequireFromString("20.50").Equal(products[0].Price))
}

func TestProductRepository_ErrorPaths(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	seedProducts(t, pool, []model.Product{product("P001", "Product A", "10.00")})

	pool.Close()

	t.Run("GetAll with closed pool", func(t *testing.T) {
		products, err := repo.GetAll(context.Background(), 10, 0)

		require.Error(t, err)
		assert.Nil(t, products)
	})

	t.Run("GetByID with closed pool", func(t *testing.T) {
		p, err := repo.GetByID(context.Background(), "P001")

		require.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("GetByIDs with closed pool", func(t *testing.T) {
		products, err := repo.GetByIDs(context.Background(), []string{"P001"})

		require.Error(t, err)
		assert.Nil(t, products)
	})
}
