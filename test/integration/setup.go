package integration

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"discount-kart/internal/config"
	"discount-kart/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
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

// SetupTestDB starts a PostgreSQL container and connects to it through the
// application's own pool constructor.
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
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// The container publishes on a random host port.
	parsed, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            parsed.ConnConfig.Host,
		Port:            int(parsed.ConnConfig.Port),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts the sample catalogue.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       string
		name     string
		price    string
		category string
	}{
		{"P001", "item1", "300.00", "Category A"},
		{"P002", "item2", "19.99", "Category B"},
		{"P003", "item3", "45.50", "Category A"},
		{"P004", "item4", "0.00", "Category C"},
		{"P005", "item5", "1200.00", "Category B"},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, price, category) VALUES ($1, $2, $3::numeric, $4)",
			p.id, p.name, p.price, p.category,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// CleanupDB removes all catalogue rows.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM products"); err != nil {
		t.Logf("failed to clean table products: %v", err)
	}
}

// WritePromoBooks writes one gzip promo book per entry into a temporary
// directory and returns their paths.
func WritePromoBooks(t *testing.T, books ...[]string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, 0, len(books))

	for i, lines := range books {
		path := filepath.Join(dir, fmt.Sprintf("promobook%d.gz", i+1))

		file, err := os.Create(path)
		if err != nil {
			t.Fatalf("failed to create %s: %v", path, err)
		}

		gz := gzip.NewWriter(file)
		if _, err := gz.Write([]byte(strings.Join(lines, "\n") + "\n")); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
		if err := gz.Close(); err != nil {
			t.Fatalf("failed to close gzip writer: %v", err)
		}
		if err := file.Close(); err != nil {
			t.Fatalf("failed to close %s: %v", path, err)
		}

		paths = append(paths, path)
	}

	return paths
}
