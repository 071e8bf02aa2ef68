package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"discount-kart/internal/discount"
	"discount-kart/internal/middleware"
	"discount-kart/internal/model"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// statusByCode maps domain error codes to HTTP status codes.
var statusByCode = map[string]int{
	model.ErrCodeValidation:          http.StatusBadRequest,
	model.ErrCodeInvalidPromoLength:  http.StatusBadRequest,
	model.ErrCodeAmbiguousDiscount:   http.StatusBadRequest,
	model.ErrCodeInvalidDiscount:     http.StatusBadRequest,
	model.ErrCodeUnknownPromoCode:    http.StatusUnprocessableEntity,
	model.ErrCodeUnknownDiscountKind: http.StatusUnprocessableEntity,
	model.ErrCodeProductNotFound:     http.StatusNotFound,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a standardised error body carrying the request's correlation ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Int("status", status).Str("error", message).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.CorrelationIDFromContext(r.Context()),
	})
}

// writeServiceError translates a service error into an HTTP error response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status, code, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, r, status, code, message, logger)
}

func classifyError(err error) (int, string, string) {
	if de, ok := model.AsDomainError(err); ok {
		status, known := statusByCode[de.Code]
		if !known {
			status = http.StatusBadRequest
		}
		return status, de.Code, err.Error()
	}

	switch {
	case errors.Is(err, discount.ErrInvalidDiscountParameter):
		return http.StatusBadRequest, model.ErrCodeInvalidDiscount, err.Error()
	case errors.Is(err, discount.ErrUnknownDiscountKind):
		return http.StatusUnprocessableEntity, model.ErrCodeUnknownDiscountKind, err.Error()
	default:
		return http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error"
	}
}

// decodeJSON decodes a bounded request body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if decoder.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}
