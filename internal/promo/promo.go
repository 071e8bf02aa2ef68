// Package promo resolves promo codes to discount classifications.
//
// Promo codes are distributed as gzipped books, one definition per line:
//
//	CODE,kind[,value]
//
// where kind is any tag accepted by discount.Parse, e.g.
//
//	SUMMER2024,percent,10
//	TAKE50OFF1,flat,50
//	TWOFORONE1,bogo
//
// Blank lines and lines starting with '#' are ignored. Books are read from the
// local file system or from S3 and held in memory for the life of the process.
package promo

import (
	"context"

	"discount-kart/internal/discount"
)

// Resolver maps a promo code to the classification it grants.
type Resolver interface {
	// Resolve returns the classification for code. Codes must be between 8
	// and 10 characters and defined in enough books.
	Resolve(ctx context.Context, code string) (discount.Classification, error)

	// Close releases resources held by the resolver.
	Close() error
}

// Book is one loaded promo book.
type Book interface {
	// Lookup returns the classification defined for code.
	Lookup(code string) (discount.Classification, bool)

	// Size returns the number of codes in the book.
	Size() int
}

// Loader reads a promo book.
type Loader interface {
	// Load reads a gzipped promo book and returns it.
	Load(ctx context.Context, path string) (Book, error)
}
