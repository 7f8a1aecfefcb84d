package transport

import (
	"net/http"

	"freshfood/internal/cart"
	"freshfood/internal/middleware"
	"freshfood/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// QuoteRequest is a cart submitted for server-side pricing
type QuoteRequest struct {
	Items []cart.Item `json:"items" validate:"dive"`
}

// CartHandler prices submitted carts with the store's shipping fee
type CartHandler struct {
	settingsService service.SettingsService
	logger          *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(settingsService service.SettingsService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// RegisterRoutes registers the cart quote route
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/cart/quote", h.Quote)
}

// Quote recomputes subtotal, shipping and total for a submitted cart so
// the checkout page prices with the same arithmetic as order creation.
func (h *CartHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Cart quote validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fee := h.settingsService.ShippingFee(r.Context())
	quote := cart.Quote(req.Items, fee)

	middleware.RespondWithJSON(w, http.StatusOK, quote)
}
