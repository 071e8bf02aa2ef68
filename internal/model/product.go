package model

import (
	"time"

	"discount-kart/internal/discount"

	"github.com/shopspring/decimal"
)

// Product is a catalogue entry quotes are priced from.
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Category  string          `json:"category" db:"category"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// Item returns the product as a discount item of the given quantity.
func (p Product) Item(quantity int) discount.Item {
	return discount.NewItem(p.Name, p.Price, quantity)
}
