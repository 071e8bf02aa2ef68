package discount

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
)

// TypeDispatcher dispatches on the dynamic type of the classification, like
// a single-dispatch generic function with one implementation per type.
type TypeDispatcher struct {
	rules map[reflect.Type]Rule
}

// NewTypeDispatcher returns a TypeDispatcher with the built-in
// classification types registered.
func NewTypeDispatcher() *TypeDispatcher {
	t := &TypeDispatcher{rules: make(map[reflect.Type]Rule)}
	mustHandle(t, percentOff, describePercent)
	mustHandle(t, flatOff, describeFlat)
	mustHandle(t, bogoOff, describeBOGO)
	mustHandle(t, noneOff, describeNone)
	return t
}

// Handle registers the implementation for classification type C.
func Handle[C Classification](t *TypeDispatcher, calculate func(Item, C) decimal.Decimal, describe func(Item, C) string) error {
	if calculate == nil || describe == nil {
		return fmt.Errorf("%w: incomplete implementation", ErrInvalidDiscountParameter)
	}
	typ := reflect.TypeOf((*C)(nil)).Elem()
	if _, exists := t.rules[typ]; exists {
		return fmt.Errorf("implementation for %s already registered", typ)
	}
	t.rules[typ] = NewRule(calculate, describe)
	return nil
}

func mustHandle[C Classification](t *TypeDispatcher, calculate func(Item, C) decimal.Decimal, describe func(Item, C) string) {
	if err := Handle(t, calculate, describe); err != nil {
		panic(err)
	}
}

func (t *TypeDispatcher) lookup(c Classification) (Rule, bool) {
	if c == nil {
		return Rule{}, false
	}
	rule, ok := t.rules[reflect.TypeOf(c)]
	return rule, ok
}

func (t *TypeDispatcher) Calculate(item Item, c Classification) (decimal.Decimal, bool) {
	rule, ok := t.lookup(c)
	if !ok {
		return decimal.Zero, false
	}
	return rule.Calculate(item, c)
}

func (t *TypeDispatcher) Describe(item Item, c Classification) (string, bool) {
	rule, ok := t.lookup(c)
	if !ok {
		return "", false
	}
	return rule.Describe(item, c)
}
