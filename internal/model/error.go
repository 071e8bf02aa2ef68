package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Error codes for API responses.
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidation          = "VALIDATION_FAILED"
	ErrCodeInvalidPromoLength  = "INVALID_PROMO_LENGTH"
	ErrCodeUnknownPromoCode    = "UNKNOWN_PROMO_CODE"
	ErrCodeAmbiguousDiscount   = "AMBIGUOUS_DISCOUNT"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidDiscount     = "INVALID_DISCOUNT_PARAMETER"
	ErrCodeUnknownDiscountKind = "UNKNOWN_DISCOUNT_KIND"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business error carrying an API error code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// AsDomainError extracts a DomainError from err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrInvalidPromoLength = NewDomainError(ErrCodeInvalidPromoLength, "Promo code must be between 8 and 10 characters")
	ErrUnknownPromoCode   = NewDomainError(ErrCodeUnknownPromoCode, "Promo code is not recognised")
	ErrAmbiguousDiscount  = NewDomainError(ErrCodeAmbiguousDiscount, "Specify either a discount or a promo code, not both")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
)
