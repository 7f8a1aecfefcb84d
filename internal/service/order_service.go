package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freshfood/internal/domain"
	"freshfood/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCustomerIncomplete = errors.New("customer information is incomplete")
	ErrOrderEmpty         = errors.New("order must contain at least one item")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrInvalidPayment     = errors.New("unknown payment status")
)

// SystemActor is recorded as the history actor for machine-made changes.
const SystemActor = "system"

// CreateOrderInput is the checkout payload: a customer snapshot plus the
// cart lines with caller-computed totals.
type CreateOrderInput struct {
	Customer      domain.CustomerInfo  `json:"customer"`
	UserID        string               `json:"user_id"`
	Items         []domain.OrderItem   `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Shipping      float64              `json:"shipping"`
	Total         float64              `json:"total"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	DeliveryDate  *time.Time           `json:"delivery_date"`
}

// CreateOrderResult identifies the newly created order.
type CreateOrderResult struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// OrderService defines the order lifecycle business logic
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, newStatus domain.OrderStatus, note, updatedBy string) error
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error
	GenerateOrderNumber(ctx context.Context, now time.Time) string
}

type orderService struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orders repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderService{orders: orders, logger: logger}
}

// GenerateOrderNumber produces a human-readable number in the format
// ORD-YYYYMMDD-NNNN. The daily sequence comes from an atomic counter
// increment; on counter failure it falls back to a timestamp-derived
// suffix, which is best effort only and can collide.
func (s *orderService) GenerateOrderNumber(ctx context.Context, now time.Time) string {
	dateStr := now.Format("20060102")

	sequence, err := s.orders.NextDailySequence(ctx, now)
	if err != nil {
		s.logger.Warn("Order counter unavailable, falling back to timestamp suffix",
			zap.Error(err),
		)
		millis := now.UnixMilli() % 10000
		return fmt.Sprintf("ORD-%s-%04d", dateStr, millis)
	}

	return fmt.Sprintf("ORD-%s-%04d", dateStr, sequence)
}

// Create validates the checkout payload and writes the order document.
// Item subtotals are recomputed as price x quantity; prices themselves
// are taken from the caller and not re-validated against the catalog.
// Variant stock is not decremented.
func (s *orderService) Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if input.Customer.Name == "" || input.Customer.Phone == "" || input.Customer.Address == "" {
		return nil, ErrCustomerIncomplete
	}
	if len(input.Items) == 0 {
		return nil, ErrOrderEmpty
	}

	now := time.Now()
	orderNumber := s.GenerateOrderNumber(ctx, now)

	items := make([]domain.OrderItem, len(input.Items))
	for i, item := range input.Items {
		item.Subtotal = item.Price * float64(item.Quantity)
		items[i] = item
	}

	order := &domain.Order{
		ID:            uuid.New().String(),
		OrderNumber:   orderNumber,
		Customer:      input.Customer,
		UserID:        input.UserID,
		Items:         items,
		Subtotal:      input.Subtotal,
		Shipping:      input.Shipping,
		Tax:           0,
		Discount:      0,
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		Status:        domain.OrderStatusPending,
		StatusHistory: []domain.StatusHistoryEntry{
			{
				Status:    domain.OrderStatusPending,
				Timestamp: now,
				UpdatedBy: SystemActor,
				Note:      "Order created",
			},
		},
		DeliveryDate: input.DeliveryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", orderNumber),
		zap.Float64("total", order.Total),
	)

	return &CreateOrderResult{
		OrderID:     order.ID,
		OrderNumber: orderNumber,
	}, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *orderService) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.orders.FindByNumber(ctx, orderNumber)
}

func (s *orderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	orders, err := s.orders.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by status: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus appends exactly one history entry and overwrites the
// top-level status to match it. Any status may follow any other; no
// transition matrix is enforced.
func (s *orderService) UpdateStatus(ctx context.Context, id string, newStatus domain.OrderStatus, note, updatedBy string) error {
	if !newStatus.Valid() {
		return ErrInvalidStatus
	}

	if note == "" {
		note = fmt.Sprintf("Status updated to %s", newStatus)
	}
	if updatedBy == "" {
		updatedBy = SystemActor
	}

	entry := domain.StatusHistoryEntry{
		Status:    newStatus,
		Timestamp: time.Now(),
		UpdatedBy: updatedBy,
		Note:      note,
	}

	if err := s.orders.AppendStatus(ctx, id, entry); err != nil {
		return err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("status", string(newStatus)),
		zap.String("updated_by", updatedBy),
	)

	return nil
}

// UpdatePaymentStatus changes payment state independently of delivery
// status; nothing prevents a delivered order with pending payment.
func (s *orderService) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	if !status.Valid() {
		return ErrInvalidPayment
	}

	if err := s.orders.SetPaymentStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("Order payment status updated",
		zap.String("order_id", id),
		zap.String("payment_status", string(status)),
	)

	return nil
}
