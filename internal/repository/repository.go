package repository

import (
	"context"

	"discount-kart/internal/model"
)

// ProductRepository is read-only access to the product catalogue.
type ProductRepository interface {
	// GetAll retrieves products ordered by name with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product. It returns nil without error when
	// the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves the products that exist among ids. Unknown IDs are
	// silently absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}
