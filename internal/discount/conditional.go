package discount

import "github.com/shopspring/decimal"

// conditional dispatches with an explicit type switch over the built-in
// classifications.
type conditional struct{}

// NewConditional returns a Dispatcher that branches explicitly on the
// classification type. It only knows the built-in classifications.
func NewConditional() Dispatcher {
	return conditional{}
}

func (conditional) Calculate(item Item, c Classification) (decimal.Decimal, bool) {
	switch c := c.(type) {
	case Percent:
		return percentOff(item, c), true
	case Flat:
		return flatOff(item, c), true
	case BOGO:
		return bogoOff(item, c), true
	case None:
		return noneOff(item, c), true
	default:
		return decimal.Zero, false
	}
}

func (conditional) Describe(item Item, c Classification) (string, bool) {
	switch c := c.(type) {
	case Percent:
		return describePercent(item, c), true
	case Flat:
		return describeFlat(item, c), true
	case BOGO:
		return describeBOGO(item, c), true
	case None:
		return describeNone(item, c), true
	default:
		return "", false
	}
}
