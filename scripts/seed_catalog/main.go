// Command seed_catalog creates the products table and upserts a sample
// catalogue, reading the same DB_* variables as the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"discount-kart/internal/config"
	"discount-kart/internal/database"

	"github.com/jackc/pgx/v5"
)

var sampleProducts = []struct {
	id       string
	name     string
	price    string
	category string
}{
	{"P001", "item1", "300.00", "Electronics"},
	{"P002", "item2", "19.99", "Books"},
	{"P003", "item3", "45.50", "Kitchen"},
	{"P004", "item4", "7.25", "Stationery"},
	{"P005", "item5", "1200.00", "Electronics"},
	{"P006", "item6", "0.00", "Samples"},
}

func main() {
	dsn := flag.String("dsn", "", "PostgreSQL connection string (defaults to DB_* variables)")
	flag.Parse()

	connString := *dsn
	if connString == "" {
		dbCfg := dbConfigFromEnv()
		connString = dbCfg.ConnectionString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if err := database.EnsureSchema(ctx, conn); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	batch := &pgx.Batch{}
	for _, p := range sampleProducts {
		batch.Queue(`
			INSERT INTO products (id, name, price, category)
			VALUES ($1, $2, $3::numeric, $4)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, price = EXCLUDED.price, category = EXCLUDED.category`,
			p.id, p.name, p.price, p.category,
		)
	}

	results := conn.SendBatch(ctx, batch)
	for _, p := range sampleProducts {
		if _, err := results.Exec(); err != nil {
			results.Close()
			fmt.Fprintf(os.Stderr, "Failed to upsert %s: %v\n", p.id, err)
			os.Exit(1)
		}
	}
	if err := results.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to finish batch: %v\n", err)
		os.Exit(1)
	}

	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d products; catalogue now holds %d\n", len(sampleProducts), count)
}

func dbConfigFromEnv() config.DatabaseConfig {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: os.Getenv("DB_PASSWORD"),
		Database: "discountkart",
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Port)
	}
	return cfg
}
