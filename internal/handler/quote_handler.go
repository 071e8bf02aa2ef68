package handler

import (
	"net/http"

	"discount-kart/internal/model"
	"discount-kart/internal/service"

	"github.com/rs/zerolog"
)

// QuoteHandler handles quote and discount evaluation requests.
type QuoteHandler struct {
	service service.QuoteService
	logger  zerolog.Logger
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service service.QuoteService, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		logger:  logger.With().Str("handler", "quote").Logger(),
	}
}

// Quote handles POST /api/quotes. Quotes are computed, not stored, so
// success is 200 OK.
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req model.QuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, err.Error(), h.logger)
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// Evaluate handles POST /api/discounts/evaluate.
func (h *QuoteHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req model.EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, err.Error(), h.logger)
		return
	}

	result, err := h.service.Evaluate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
