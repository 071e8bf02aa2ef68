package discount

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Rule is the calculate/describe pair a registry resolves a classification to.
// Both functions report false when handed a classification they cannot use.
type Rule struct {
	Calculate func(item Item, c Classification) (decimal.Decimal, bool)
	Describe  func(item Item, c Classification) (string, bool)
}

// NewRule adapts typed calculate and describe functions for classification
// type C into a Rule.
func NewRule[C Classification](calculate func(Item, C) decimal.Decimal, describe func(Item, C) string) Rule {
	return Rule{
		Calculate: func(item Item, c Classification) (decimal.Decimal, bool) {
			typed, ok := c.(C)
			if !ok {
				return decimal.Zero, false
			}
			return calculate(item, typed), true
		},
		Describe: func(item Item, c Classification) (string, bool) {
			typed, ok := c.(C)
			if !ok {
				return "", false
			}
			return describe(item, typed), true
		},
	}
}

func builtinRules() map[Kind]Rule {
	return map[Kind]Rule{
		KindPercent: NewRule(percentOff, describePercent),
		KindFlat:    NewRule(flatOff, describeFlat),
		KindBOGO:    NewRule(bogoOff, describeBOGO),
		KindNone:    NewRule(noneOff, describeNone),
	}
}

// Registry dispatches through a map from kind to rule. It is populated at
// startup and read-only afterwards.
type Registry struct {
	rules map[Kind]Rule
}

// NewRegistry returns a Registry holding the built-in rules.
func NewRegistry() *Registry {
	return &Registry{rules: builtinRules()}
}

// Register adds a rule for a new kind. Kinds cannot be registered twice.
func (r *Registry) Register(kind Kind, rule Rule) error {
	if kind == "" {
		return fmt.Errorf("%w: empty kind", ErrInvalidDiscountParameter)
	}
	if rule.Calculate == nil || rule.Describe == nil {
		return fmt.Errorf("%w: rule for %q is incomplete", ErrInvalidDiscountParameter, kind)
	}
	if _, exists := r.rules[kind]; exists {
		return fmt.Errorf("rule for kind %q already registered", kind)
	}
	r.rules[kind] = rule
	return nil
}

// Resolve returns the rule registered for the classification's kind.
func (r *Registry) Resolve(c Classification) (Rule, bool) {
	if c == nil {
		return Rule{}, false
	}
	rule, ok := r.rules[c.Kind()]
	return rule, ok
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.rules))
	for k := range r.rules {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (r *Registry) Calculate(item Item, c Classification) (decimal.Decimal, bool) {
	rule, ok := r.Resolve(c)
	if !ok {
		return decimal.Zero, false
	}
	return rule.Calculate(item, c)
}

func (r *Registry) Describe(item Item, c Classification) (string, bool) {
	rule, ok := r.Resolve(c)
	if !ok {
		return "", false
	}
	return rule.Describe(item, c)
}
