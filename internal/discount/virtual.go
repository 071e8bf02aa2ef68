package discount

import "github.com/shopspring/decimal"

// policy is the method set each classification's policy object exposes.
type policy interface {
	handles() bool
	calculate(item Item) decimal.Decimal
	describe(item Item) string
}

// basePolicy supplies the default behaviour that concrete policies embed and
// override. On its own it handles nothing.
type basePolicy struct{}

func (basePolicy) handles() bool {
	return false
}

func (basePolicy) calculate(Item) decimal.Decimal {
	return decimal.Zero
}

func (basePolicy) describe(Item) string {
	return DescriptionNone
}

type percentPolicy struct {
	basePolicy
	c Percent
}

func (percentPolicy) handles() bool {
	return true
}

func (p percentPolicy) calculate(item Item) decimal.Decimal {
	return percentOff(item, p.c)
}

func (p percentPolicy) describe(item Item) string {
	return describePercent(item, p.c)
}

type flatPolicy struct {
	basePolicy
	c Flat
}

func (flatPolicy) handles() bool {
	return true
}

func (p flatPolicy) calculate(item Item) decimal.Decimal {
	return flatOff(item, p.c)
}

func (p flatPolicy) describe(item Item) string {
	return describeFlat(item, p.c)
}

type bogoPolicy struct {
	basePolicy
}

func (bogoPolicy) handles() bool {
	return true
}

func (bogoPolicy) calculate(item Item) decimal.Decimal {
	return bogoOff(item, BOGO{})
}

func (bogoPolicy) describe(Item) string {
	return DescriptionBOGO
}

// nonePolicy inherits calculate and describe from the base.
type nonePolicy struct {
	basePolicy
}

func (nonePolicy) handles() bool {
	return true
}

// virtual builds a policy object per classification and calls through the
// policy interface.
type virtual struct{}

// NewVirtual returns a Dispatcher that routes through policy objects built on
// an embedded base, the Go rendering of subclass-based virtual dispatch.
func NewVirtual() Dispatcher {
	return virtual{}
}

func newPolicy(c Classification) policy {
	switch c := c.(type) {
	case Percent:
		return percentPolicy{c: c}
	case Flat:
		return flatPolicy{c: c}
	case BOGO:
		return bogoPolicy{}
	case None:
		return nonePolicy{}
	default:
		return basePolicy{}
	}
}

func (virtual) Calculate(item Item, c Classification) (decimal.Decimal, bool) {
	p := newPolicy(c)
	if !p.handles() {
		return decimal.Zero, false
	}
	return p.calculate(item), true
}

func (virtual) Describe(item Item, c Classification) (string, bool) {
	p := newPolicy(c)
	if !p.handles() {
		return "", false
	}
	return p.describe(item), true
}
