package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"discount-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testProducts() []model.Product {
	return []model.Product{
		{ID: "P001", Name: "Product 1", Price: decimal.RequireFromString("10.00"), Category: "Cat1", CreatedAt: time.Now()},
		{ID: "P002", Name: "Product 2", Price: decimal.RequireFromString("20.50"), Category: "Cat2", CreatedAt: time.Now()},
	}
}

func TestProductHandler_GetAll(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectService  bool
		limit          int
		offset         int
	}{
		{
			name:           "Default pagination",
			mockReturn:     testProducts(),
			expectedStatus: http.StatusOK,
			expectService:  true,
			limit:          10,
		},
		{
			name:           "Custom pagination",
			queryParams:    "?limit=5&offset=10",
			mockReturn:     testProducts(),
			expectedStatus: http.StatusOK,
			expectService:  true,
			limit:          5,
			offset:         10,
		},
		{
			name:           "Invalid limit",
			queryParams:    "?limit=invalid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid offset",
			queryParams:    "?offset=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service error",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
			limit:          10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("GetAll", mock.Anything, tt.limit, tt.offset).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.queryParams, nil)
			w := httptest.NewRecorder()

			handler.GetAll(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var products []model.Product
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
				require.Len(t, products, len(tt.mockReturn))
				assert.True(t, tt.mockReturn[1].Price.Equal(products[1].Price))
			} else {
				assert.NotEmpty(t, decodeError(t, w).Error)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	product := testProducts()[0]

	tests := []struct {
		name           string
		productID      string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{name: "Success", productID: "P001", mockReturn: &product, expectedStatus: http.StatusOK},
		{name: "Not found", productID: "P999", mockError: model.ErrProductNotFound, expectedStatus: http.StatusNotFound, expectedCode: model.ErrCodeProductNotFound},
		{name: "Service error", productID: "P001", mockError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedCode: model.ErrCodeInternalError},
		{name: "Missing ID", productID: "", expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			if tt.productID != "" {
				mockService.On("GetByID", mock.Anything, tt.productID).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.productID, nil)
			req.SetPathValue("id", tt.productID)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			} else {
				var got model.Product
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, product.ID, got.ID)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_PassesRequestContext(t *testing.T) {
	type ctxKey struct{}
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())

	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	mockService.On("GetAll", mock.MatchedBy(func(c context.Context) bool {
		return c.Value(ctxKey{}) == "marker"
	}), 10, 0).Return([]model.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.GetAll(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
