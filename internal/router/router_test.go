package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"discount-kart/internal/discount"
	"discount-kart/internal/handler"
	"discount-kart/internal/metrics"
	"discount-kart/internal/middleware"
	"discount-kart/internal/model"
	"discount-kart/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const testAPIKey = "router-test-key"

// stubRepository serves a fixed catalogue.
type stubRepository struct {
	products map[string]model.Product
}

func (s *stubRepository) GetAll(_ context.Context, limit, offset int) ([]model.Product, error) {
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepository) GetByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *stubRepository) GetByIDs(_ context.Context, ids []string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	repo := &stubRepository{products: map[string]model.Product{
		"P001": {ID: "P001", Name: "item1", Price: decimal.NewFromInt(300), Category: "Cat1"},
	}}
	reg := prometheus.NewRegistry()
	m := metrics.New("test", reg)

	products := service.NewProductService(repo, logger)
	quotes := service.NewQuoteService(repo, nil, discount.NewRegistry(), discount.Strict, m, logger)

	return New(Handlers{
		Products: handler.NewProductHandler(products, logger),
		Quotes:   handler.NewQuoteHandler(quotes, logger),
	}, testAPIKey, m, reg, logger)
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		apiKey         string
		expectedStatus int
		bodyContains   string
	}{
		{name: "Health without key", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK, bodyContains: "healthy"},
		{name: "Metrics without key", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK, bodyContains: "test_"},
		{name: "Products require key", method: http.MethodGet, path: "/api/products", expectedStatus: http.StatusUnauthorized},
		{name: "List products", method: http.MethodGet, path: "/api/products", apiKey: testAPIKey, expectedStatus: http.StatusOK, bodyContains: "P001"},
		{name: "Get product", method: http.MethodGet, path: "/api/products/P001", apiKey: testAPIKey, expectedStatus: http.StatusOK, bodyContains: "item1"},
		{name: "Missing product", method: http.MethodGet, path: "/api/products/P999", apiKey: testAPIKey, expectedStatus: http.StatusNotFound, bodyContains: model.ErrCodeProductNotFound},
		{
			name:           "Create quote",
			method:         http.MethodPost,
			path:           "/api/quotes",
			body:           `{"items":[{"productId":"P001","quantity":2}],"discount":{"kind":"percent","value":"10"}}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusOK,
			bodyContains:   `"discount":"60"`,
		},
		{
			name:           "Evaluate discount",
			method:         http.MethodPost,
			path:           "/api/discounts/evaluate",
			body:           `{"name":"item1","unitPrice":"300","quantity":2,"discount":{"kind":"bogo"}}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusOK,
			bodyContains:   "Buy one get one free on item1",
		},
		{name: "Wrong method", method: http.MethodGet, path: "/api/quotes", apiKey: testAPIKey, expectedStatus: http.StatusMethodNotAllowed},
		{name: "Unknown route", method: http.MethodGet, path: "/api/orders", apiKey: testAPIKey, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(middleware.CorrelationIDHeader))
			if tt.bodyContains != "" {
				assert.Contains(t, w.Body.String(), tt.bodyContains)
			}
		})
	}
}
