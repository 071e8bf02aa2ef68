// Package discount computes the discount for a single priced item under a
// discount classification (percent off, flat amount off, buy-one-get-one-free,
// or none) and renders a description of it.
//
// The package is pure: it performs no I/O and no logging. Classifications are
// routed to their behaviour by a Dispatcher; five interchangeable dispatch
// mechanisms are provided and all of them produce identical results for the
// built-in classifications. The Engine wraps a Dispatcher with parameter
// validation, strict or permissive handling of unknown kinds, and clamping of
// the amount to the item subtotal.
package discount

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Item is a priced line the engine computes a discount for.
type Item struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// NewItem creates an item.
func NewItem(name string, unitPrice decimal.Decimal, quantity int) Item {
	return Item{Name: name, UnitPrice: unitPrice, Quantity: quantity}
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate reports a negative quantity or unit price.
func (i Item) Validate() error {
	if i.Quantity < 0 {
		return fmt.Errorf("%w: quantity %d is negative", ErrInvalidDiscountParameter, i.Quantity)
	}
	if i.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price %s is negative", ErrInvalidDiscountParameter, i.UnitPrice)
	}
	return nil
}

// Result is the outcome of applying a classification to an item.
type Result struct {
	Amount      decimal.Decimal
	Description string
	// Label is the description qualified with the item name, e.g. "10% off on item1".
	Label string
}

// Dispatcher routes a classification to its calculate and describe behaviour.
// The boolean result is false when the dispatcher has no behaviour for the
// classification.
type Dispatcher interface {
	Calculate(item Item, c Classification) (decimal.Decimal, bool)
	Describe(item Item, c Classification) (string, bool)
}
