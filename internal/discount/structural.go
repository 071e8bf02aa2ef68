package discount

import "github.com/shopspring/decimal"

// Discounter is the capability a classification carries when it can price
// and describe itself. Any type with these methods satisfies it.
type Discounter interface {
	Classification
	Calculate(item Item) decimal.Decimal
	Describe(item Item) string
}

var (
	_ Discounter = Percent{}
	_ Discounter = Flat{}
	_ Discounter = BOGO{}
	_ Discounter = None{}
)

func (p Percent) Calculate(item Item) decimal.Decimal { return percentOff(item, p) }
func (p Percent) Describe(item Item) string           { return describePercent(item, p) }

func (f Flat) Calculate(item Item) decimal.Decimal { return flatOff(item, f) }
func (f Flat) Describe(item Item) string           { return describeFlat(item, f) }

func (b BOGO) Calculate(item Item) decimal.Decimal { return bogoOff(item, b) }
func (b BOGO) Describe(item Item) string           { return describeBOGO(item, b) }

func (n None) Calculate(item Item) decimal.Decimal { return noneOff(item, n) }
func (n None) Describe(item Item) string           { return describeNone(item, n) }

// structural dispatches to classifications that implement Discounter.
type structural struct{}

// NewStructural returns a Dispatcher that calls the classification's own
// Calculate and Describe methods. Classifications without them are unknown.
func NewStructural() Dispatcher {
	return structural{}
}

func (structural) Calculate(item Item, c Classification) (decimal.Decimal, bool) {
	d, ok := c.(Discounter)
	if !ok {
		return decimal.Zero, false
	}
	return d.Calculate(item), true
}

func (structural) Describe(item Item, c Classification) (string, bool) {
	d, ok := c.(Discounter)
	if !ok {
		return "", false
	}
	return d.Describe(item), true
}
