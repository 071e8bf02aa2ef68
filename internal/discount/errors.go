package discount

import "errors"

var (
	// ErrInvalidDiscountParameter is returned when a classification parameter or
	// an item field violates its invariant, e.g. a negative percent.
	ErrInvalidDiscountParameter = errors.New("invalid discount parameter")

	// ErrUnknownDiscountKind is returned in strict mode when no behaviour is
	// registered for a classification.
	ErrUnknownDiscountKind = errors.New("unknown discount kind")
)
