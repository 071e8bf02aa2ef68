package promo

import (
	"strings"

	"discount-kart/internal/discount"
)

// mapBook implements Book over a map keyed by normalised code.
type mapBook struct {
	codes map[string]discount.Classification
}

// newMapBook creates an empty map-based book.
func newMapBook(capacity int) *mapBook {
	return &mapBook{
		codes: make(map[string]discount.Classification, capacity),
	}
}

func (b *mapBook) Lookup(code string) (discount.Classification, bool) {
	c, ok := b.codes[normaliseCode(code)]
	return c, ok
}

func (b *mapBook) Size() int {
	return len(b.codes)
}

// Add defines code, replacing any earlier definition.
func (b *mapBook) Add(code string, c discount.Classification) {
	b.codes[normaliseCode(code)] = c
}

func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
