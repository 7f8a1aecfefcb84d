package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"freshfood/internal/cart"
	"freshfood/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSettingsService serves a fixed shipping fee without a repository.
type stubSettingsService struct {
	fee float64
}

func (s *stubSettingsService) Get(ctx context.Context) (*domain.StoreSettings, error) {
	return &domain.StoreSettings{ShippingFee: s.fee}, nil
}

func (s *stubSettingsService) Update(ctx context.Context, settings domain.StoreSettings) (*domain.StoreSettings, error) {
	return &settings, nil
}

func (s *stubSettingsService) ShippingFee(ctx context.Context) float64 {
	return s.fee
}

func TestQuotePricesSubmittedCart(t *testing.T) {
	handler := NewCartHandler(&stubSettingsService{fee: 2000}, zap.NewNop())

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": "p1", "variant_id": "v1", "price": 1500, "quantity": 2},
			{"product_id": "p2", "variant_id": "v2", "price": 800, "quantity": 1},
		},
	}

	w := postJSON(t, handler.Quote, "/api/cart/quote", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var quote cart.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 3800.0, quote.Subtotal)
	assert.Equal(t, 2000.0, quote.Shipping)
	assert.Equal(t, 5800.0, quote.Total)
}

func TestQuoteDropsNonPositiveQuantityLines(t *testing.T) {
	handler := NewCartHandler(&stubSettingsService{fee: 2000}, zap.NewNop())

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": "p1", "variant_id": "v1", "price": 1500, "quantity": 2},
			{"product_id": "p2", "variant_id": "v2", "price": 800, "quantity": 0},
			{"product_id": "p3", "variant_id": "v3", "price": 500, "quantity": -3},
		},
	}

	w := postJSON(t, handler.Quote, "/api/cart/quote", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var quote cart.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	require.Len(t, quote.Items, 1)
	assert.Equal(t, "p1", quote.Items[0].ProductID)
	assert.Equal(t, 3000.0, quote.Subtotal)
	assert.Equal(t, 5000.0, quote.Total)
}

func TestQuoteEmptyCartSkipsShipping(t *testing.T) {
	handler := NewCartHandler(&stubSettingsService{fee: 2000}, zap.NewNop())

	payload := map[string]interface{}{"items": []map[string]interface{}{}}

	w := postJSON(t, handler.Quote, "/api/cart/quote", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var quote cart.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Zero(t, quote.Subtotal)
	assert.Zero(t, quote.Shipping)
	assert.Zero(t, quote.Total)
}
