package promo

import (
	"context"
	"fmt"
	"sync"

	"discount-kart/internal/discount"
	"discount-kart/internal/model"

	"github.com/rs/zerolog"
)

const (
	minCodeLength = 8
	maxCodeLength = 10
)

// catalog implements Resolver over books loaded once at startup.
type catalog struct {
	books         []Book
	minMatchCount int
	logger        zerolog.Logger
}

// CatalogConfig holds configuration for the promo catalog.
type CatalogConfig struct {
	// FilePaths is the list of promo books to load. Earlier books take
	// precedence when a code is defined differently in several of them.
	FilePaths []string

	// MinMatchCount is the minimum number of books a code must appear in.
	// Default: 1
	MinMatchCount int
}

// DefaultCatalogConfig returns the default catalog configuration.
func DefaultCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		FilePaths: []string{
			"data/promos/promobook1.gz",
			"data/promos/promobook2.gz",
			"data/promos/promobook3.gz",
		},
		MinMatchCount: 1,
	}
}

// NewCatalog loads every configured book concurrently and returns a Resolver.
func NewCatalog(ctx context.Context, config *CatalogConfig, loader Loader, logger zerolog.Logger) (Resolver, error) {
	if config == nil {
		config = DefaultCatalogConfig()
	}

	if config.MinMatchCount < 1 || config.MinMatchCount > len(config.FilePaths) {
		return nil, fmt.Errorf("min match count must be between 1 and %d, got %d", len(config.FilePaths), config.MinMatchCount)
	}

	logger = logger.With().Str("component", "promo-catalog").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Int("min_match_count", config.MinMatchCount).
		Msg("initialising promo catalog")

	type loadResult struct {
		book Book
		err  error
	}

	results := make([]loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			book, err := loader.Load(ctx, path)
			results[index] = loadResult{book: book, err: err}
		}(i, filePath)
	}

	wg.Wait()

	c := &catalog{
		books:         make([]Book, 0, len(config.FilePaths)),
		minMatchCount: config.MinMatchCount,
		logger:        logger,
	}

	total := 0
	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load promo book")
			return nil, fmt.Errorf("failed to load promo book %s: %w", config.FilePaths[i], result.err)
		}
		c.books = append(c.books, result.book)
		total += result.book.Size()
	}

	logger.Info().
		Int("total_promos", total).
		Msg("promo catalog initialised successfully")

	return c, nil
}

// Resolve returns the classification granted by code.
//
// Surrounding space and case are ignored. The code must then be 8 to 10
// characters long and appear in at least MinMatchCount books. When books
// disagree, the first book wins.
func (c *catalog) Resolve(ctx context.Context, code string) (discount.Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code = normaliseCode(code)
	if len(code) < minCodeLength || len(code) > maxCodeLength {
		c.logger.Debug().
			Str("promo_code", code).
			Int("length", len(code)).
			Msg("promo code length invalid")
		return nil, model.ErrInvalidPromoLength
	}

	var granted discount.Classification
	matches := 0
	for _, book := range c.books {
		classification, ok := book.Lookup(code)
		if !ok {
			continue
		}
		if granted == nil {
			granted = classification
		}
		matches++
	}

	if matches < c.minMatchCount {
		c.logger.Debug().
			Str("promo_code", code).
			Int("match_count", matches).
			Msg("promo code not found in sufficient books")
		return nil, model.ErrUnknownPromoCode
	}

	return granted, nil
}

// Close releases the loaded books.
func (c *catalog) Close() error {
	c.books = nil

	c.logger.Info().Msg("promo catalog closed")

	return nil
}
