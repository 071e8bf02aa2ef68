package service

import (
	"context"

	"discount-kart/internal/model"
)

// ProductService defines read operations on the product catalogue.
type ProductService interface {
	// GetAll retrieves products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// QuoteService prices items under a discount classification.
type QuoteService interface {
	// Quote prices catalogue products under the discount or promo code in req.
	Quote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error)

	// Evaluate prices a single ad-hoc item under an explicit discount.
	Evaluate(ctx context.Context, req *model.EvaluateRequest) (*model.EvaluateResponse, error)
}
