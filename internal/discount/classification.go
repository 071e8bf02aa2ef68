package discount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the tag naming a discount classification.
type Kind string

// Built-in kinds.
const (
	KindPercent Kind = "percent"
	KindFlat    Kind = "flat"
	KindBOGO    Kind = "bogo"
	KindNone    Kind = "none"
)

// Classification is a discount rule together with its parameters.
// Values are immutable and carry no reference to any item.
type Classification interface {
	Kind() Kind
	Validate() error
}

// Percent takes a percentage off the item subtotal.
type Percent struct {
	Percent decimal.Decimal
}

// NewPercent returns a Percent classification, rejecting values outside [0, 100].
func NewPercent(percent decimal.Decimal) (Percent, error) {
	p := Percent{Percent: percent}
	if err := p.Validate(); err != nil {
		return Percent{}, err
	}
	return p, nil
}

func (Percent) Kind() Kind { return KindPercent }

func (p Percent) Validate() error {
	if p.Percent.IsNegative() || p.Percent.GreaterThan(hundred) {
		return fmt.Errorf("%w: percent %s must be between 0 and 100", ErrInvalidDiscountParameter, p.Percent)
	}
	return nil
}

// Flat takes a fixed amount off the item subtotal.
type Flat struct {
	Amount decimal.Decimal
}

// NewFlat returns a Flat classification, rejecting negative amounts.
func NewFlat(amount decimal.Decimal) (Flat, error) {
	f := Flat{Amount: amount}
	if err := f.Validate(); err != nil {
		return Flat{}, err
	}
	return f, nil
}

func (Flat) Kind() Kind { return KindFlat }

func (f Flat) Validate() error {
	if f.Amount.IsNegative() {
		return fmt.Errorf("%w: flat amount %s is negative", ErrInvalidDiscountParameter, f.Amount)
	}
	return nil
}

// BOGO gives one unit free for every unit bought.
type BOGO struct{}

func (BOGO) Kind() Kind      { return KindBOGO }
func (BOGO) Validate() error { return nil }

// None applies no discount.
type None struct{}

func (None) Kind() Kind      { return KindNone }
func (None) Validate() error { return nil }

// Tag is a classification known only by its free-form tag and an optional
// value. It is bound late: only a Registry with a rule registered under the
// tag resolves it.
type Tag struct {
	Name  Kind
	Value decimal.Decimal
}

func (t Tag) Kind() Kind { return t.Name }

func (t Tag) Validate() error {
	if t.Value.IsNegative() {
		return fmt.Errorf("%w: %s value %s is negative", ErrInvalidDiscountParameter, t.Name, t.Value)
	}
	return nil
}

// normalise dereferences pointers to the built-in variants and Tag so that
// every dispatcher sees the value form. A nil pointer becomes a nil
// classification.
func normalise(c Classification) Classification {
	switch v := c.(type) {
	case *Percent:
		if v == nil {
			return nil
		}
		return *v
	case *Flat:
		if v == nil {
			return nil
		}
		return *v
	case *BOGO:
		if v == nil {
			return nil
		}
		return *v
	case *None:
		if v == nil {
			return nil
		}
		return *v
	case *Tag:
		if v == nil {
			return nil
		}
		return *v
	default:
		return c
	}
}

// Parse builds a classification from a type tag and its textual value.
// Tags are case-insensitive; an empty tag means no discount. Unrecognised
// tags yield a Tag so that the dispatcher and mode decide their fate.
func Parse(kind, value string) (Classification, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(kind)))

	switch k {
	case "", KindNone:
		return None{}, nil
	case KindBOGO:
		return BOGO{}, nil
	}

	v, err := parseValue(k, value)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindPercent:
		return NewPercent(v)
	case KindFlat:
		return NewFlat(v)
	default:
		t := Tag{Name: k, Value: v}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		return t, nil
	}
}

func parseValue(k Kind, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if k == KindPercent || k == KindFlat {
			return decimal.Zero, fmt.Errorf("%w: %s requires a value", ErrInvalidDiscountParameter, k)
		}
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s value %q is not a number", ErrInvalidDiscountParameter, k, value)
	}
	return v, nil
}
