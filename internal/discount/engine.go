package discount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode decides what happens when the dispatcher has no behaviour for a
// classification.
type Mode int

const (
	// Strict reports ErrUnknownDiscountKind.
	Strict Mode = iota
	// Permissive falls back to no discount.
	Permissive
)

func (m Mode) String() string {
	if m == Permissive {
		return "permissive"
	}
	return "strict"
}

// ParseMode parses "strict" or "permissive".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "permissive":
		return Permissive, nil
	default:
		return Strict, fmt.Errorf("invalid discount mode %q (must be strict or permissive)", s)
	}
}

// Dispatch mechanism names accepted by NewDispatcher.
const (
	MechanismConditional = "conditional"
	MechanismVirtual     = "virtual"
	MechanismStructural  = "structural"
	MechanismMap         = "map"
	MechanismMulti       = "multi"
)

// Mechanisms lists every dispatch mechanism name.
func Mechanisms() []string {
	return []string{
		MechanismConditional,
		MechanismVirtual,
		MechanismStructural,
		MechanismMap,
		MechanismMulti,
	}
}

// NewDispatcher returns the dispatcher for a mechanism name.
func NewDispatcher(mechanism string) (Dispatcher, error) {
	switch strings.ToLower(strings.TrimSpace(mechanism)) {
	case MechanismConditional:
		return NewConditional(), nil
	case MechanismVirtual:
		return NewVirtual(), nil
	case MechanismStructural:
		return NewStructural(), nil
	case MechanismMap:
		return NewRegistry(), nil
	case MechanismMulti:
		return NewTypeDispatcher(), nil
	default:
		return nil, fmt.Errorf("invalid dispatch mechanism %q", mechanism)
	}
}

// Engine validates inputs, dispatches, applies the mode and keeps every
// amount within [0, subtotal]. It holds no per-call state and is safe for
// concurrent use as long as its dispatcher is not being registered into.
type Engine struct {
	dispatcher Dispatcher
	mode       Mode
}

// Option configures an Engine.
type Option func(*Engine)

// WithMode sets the unknown-kind mode. The default is Strict.
func WithMode(mode Mode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// New creates an engine over dispatcher. A nil dispatcher uses a Registry.
func New(dispatcher Dispatcher, opts ...Option) *Engine {
	if dispatcher == nil {
		dispatcher = NewRegistry()
	}
	e := &Engine{dispatcher: dispatcher, mode: Strict}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the engine's unknown-kind mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// CalculateDiscount returns the discount amount for item under c.
// Pointers to the built-in variants are treated as their values.
func (e *Engine) CalculateDiscount(item Item, c Classification) (decimal.Decimal, error) {
	c = normalise(c)
	if err := item.Validate(); err != nil {
		return decimal.Zero, err
	}
	if err := validateClassification(c); err != nil {
		return decimal.Zero, err
	}

	amount, ok := e.dispatcher.Calculate(item, c)
	if !ok {
		if err := e.miss(c); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, nil
	}

	return clamp(amount, item.Subtotal()), nil
}

// DescribeDiscount returns the display sentence for c. It never calculates.
func (e *Engine) DescribeDiscount(item Item, c Classification) (string, error) {
	c = normalise(c)
	if err := validateClassification(c); err != nil {
		return "", err
	}

	description, ok := e.dispatcher.Describe(item, c)
	if !ok {
		if err := e.miss(c); err != nil {
			return "", err
		}
		return DescriptionNone, nil
	}

	return description, nil
}

// Apply calculates and describes in one call.
func (e *Engine) Apply(item Item, c Classification) (Result, error) {
	amount, err := e.CalculateDiscount(item, c)
	if err != nil {
		return Result{}, err
	}
	description, err := e.DescribeDiscount(item, c)
	if err != nil {
		return Result{}, err
	}

	label := description
	if description != DescriptionNone && item.Name != "" {
		label = description + " on " + item.Name
	}

	return Result{Amount: amount, Description: description, Label: label}, nil
}

func (e *Engine) miss(c Classification) error {
	if e.mode == Permissive {
		return nil
	}
	if c == nil {
		return fmt.Errorf("%w: no classification", ErrUnknownDiscountKind)
	}
	return fmt.Errorf("%w: %q", ErrUnknownDiscountKind, c.Kind())
}

// validateClassification leaves nil to the mode handling.
func validateClassification(c Classification) error {
	if c == nil {
		return nil
	}
	return c.Validate()
}

func clamp(amount, subtotal decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}
