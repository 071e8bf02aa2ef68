package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountSpec selects a discount classification by its type tag.
type DiscountSpec struct {
	Kind  string `json:"kind" validate:"max=32"`
	Value string `json:"value,omitempty" validate:"max=32"`
}

// QuoteRequest asks for catalogue items to be priced under one discount.
// At most one of Discount and PromoCode may be set; with neither, no discount applies.
type QuoteRequest struct {
	Items     []QuoteItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
	Discount  *DiscountSpec      `json:"discount,omitempty"`
	PromoCode *string            `json:"promoCode,omitempty"`
	Mode      string             `json:"mode,omitempty" validate:"omitempty,oneof=strict permissive"`
}

// QuoteItemRequest is a single catalogue item in a quote request.
type QuoteItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=50"`
	Quantity  int    `json:"quantity"`
}

// QuoteLine is one priced and discounted item.
type QuoteLine struct {
	ProductID           string          `json:"productId"`
	Name                string          `json:"name"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	Quantity            int             `json:"quantity"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	DiscountDescription string          `json:"discountDescription"`
	Total               decimal.Decimal `json:"total"`
}

// QuoteResponse is the priced quote.
type QuoteResponse struct {
	ID           uuid.UUID       `json:"id"`
	DiscountKind string          `json:"discountKind"`
	Mode         string          `json:"mode"`
	Lines        []QuoteLine     `json:"lines"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
}

// EvaluateRequest prices one ad-hoc item that is not in the catalogue.
type EvaluateRequest struct {
	Name      string          `json:"name" validate:"max=255"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Discount  DiscountSpec    `json:"discount"`
	Mode      string          `json:"mode,omitempty" validate:"omitempty,oneof=strict permissive"`
}

// EvaluateResponse is the engine result for an ad-hoc item.
type EvaluateResponse struct {
	Name                string          `json:"name"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	Quantity            int             `json:"quantity"`
	DiscountKind        string          `json:"discountKind"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	DiscountDescription string          `json:"discountDescription"`
	DiscountLabel       string          `json:"discountLabel"`
}
