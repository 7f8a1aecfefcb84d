package transport

import (
	"errors"
	"net/http"

	"freshfood/internal/domain"
	"freshfood/internal/middleware"
	"freshfood/internal/repository"
	"freshfood/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest is the storefront checkout payload
type CheckoutRequest struct {
	Customer struct {
		Name           string `json:"name" validate:"required"`
		Email          string `json:"email" validate:"omitempty,email"`
		Phone          string `json:"phone" validate:"required"`
		Address        string `json:"address" validate:"required"`
		City           string `json:"city"`
		State          string `json:"state"`
		AdditionalInfo string `json:"additional_info"`
	} `json:"customer"`
	Items         []domain.OrderItem `json:"items" validate:"required,min=1"`
	Subtotal      float64            `json:"subtotal" validate:"gte=0"`
	Shipping      float64            `json:"shipping" validate:"gte=0"`
	Total         float64            `json:"total" validate:"gte=0"`
	PaymentMethod string             `json:"payment_method" validate:"required"`
}

// UpdateStatusRequest changes an order's delivery status (admin)
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

// UpdatePaymentRequest changes an order's payment status (admin)
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers checkout, order confirmation and the admin
// order management routes. Checkout runs behind optional auth so a
// logged-in caller's order is linked to the account while guests pass
// straight through.
func (h *OrderHandler) RegisterRoutes(r chi.Router, optionalAuth, checkoutLimiter func(http.Handler) http.Handler, adminStack []func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.With(optionalAuth, checkoutLimiter).Post("/", h.Checkout)
		r.Get("/number/{orderNumber}", h.GetByNumber)
	})

	r.Route("/api/admin/orders", func(r chi.Router) {
		for _, mw := range adminStack {
			r.Use(mw)
		}
		r.Get("/", h.ListAll)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Patch("/{id}/payment", h.UpdatePayment)
	})
}

// Checkout creates an order from the submitted cart snapshot
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		middleware.RespondWithError(w, http.StatusBadRequest, "unknown payment method")
		return
	}

	// An authenticated checkout links the order to the account; guests
	// check out with a customer snapshot only.
	userID, _ := middleware.GetUserID(r.Context())

	input := service.CreateOrderInput{
		Customer: domain.CustomerInfo{
			Name:           req.Customer.Name,
			Email:          req.Customer.Email,
			Phone:          req.Customer.Phone,
			Address:        req.Customer.Address,
			City:           req.Customer.City,
			State:          req.Customer.State,
			AdditionalInfo: req.Customer.AdditionalInfo,
		},
		UserID:        userID,
		Items:         req.Items,
		Subtotal:      req.Subtotal,
		Shipping:      req.Shipping,
		Total:         req.Total,
		PaymentMethod: method,
	}

	result, err := h.orderService.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerIncomplete), errors.Is(err, service.ErrOrderEmpty):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, result)
}

// GetByNumber returns an order by its display number (order confirmation page)
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := h.orderService.GetByNumber(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to get order by number", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// ListAll returns all orders, optionally filtered by status (admin)
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	var (
		orders []*domain.Order
		err    error
	)

	if status := r.URL.Query().Get("status"); status != "" {
		orders, err = h.orderService.ListByStatus(r.Context(), domain.OrderStatus(status))
		if errors.Is(err, service.ErrInvalidStatus) {
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown order status")
			return
		}
	} else {
		orders, err = h.orderService.ListAll(r.Context())
	}

	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get returns a single order by id (admin)
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to get order", zap.Error(err), zap.String("id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateStatus appends a status transition to an order (admin)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updatedBy, _ := middleware.GetUserID(r.Context())

	err := h.orderService.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status), req.Note, updatedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown order status")
		case errors.Is(err, repository.ErrOrderNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		default:
			h.logger.Error("Failed to update order status", zap.Error(err), zap.String("id", id))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order status")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order status updated"})
}

// UpdatePayment changes an order's payment status (admin)
func (h *OrderHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePaymentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.orderService.UpdatePaymentStatus(r.Context(), id, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayment):
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown payment status")
		case errors.Is(err, repository.ErrOrderNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		default:
			h.logger.Error("Failed to update payment status", zap.Error(err), zap.String("id", id))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update payment status")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "payment status updated"})
}
