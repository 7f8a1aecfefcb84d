package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"freshfood/internal/domain"
	"freshfood/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Mock repository for testing
type mockOrderRepository struct {
	orders      map[string]*domain.Order
	sequence    map[string]int
	counterDown bool
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{
		orders:   make(map[string]*domain.Order),
		sequence: make(map[string]int),
	}
}

func (m *mockOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	for _, order := range m.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *mockOrderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.Status == status {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) AppendStatus(ctx context.Context, id string, entry domain.StatusHistoryEntry) error {
	order, exists := m.orders[id]
	if !exists {
		return repository.ErrOrderNotFound
	}
	order.Status = entry.Status
	order.StatusHistory = append(order.StatusHistory, entry)
	order.UpdatedAt = entry.Timestamp
	return nil
}

func (m *mockOrderRepository) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	order, exists := m.orders[id]
	if !exists {
		return repository.ErrOrderNotFound
	}
	order.PaymentStatus = status
	return nil
}

func (m *mockOrderRepository) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	if m.counterDown {
		return 0, errors.New("counter unavailable")
	}
	key := day.Format("20060102")
	m.sequence[key]++
	return m.sequence[key], nil
}

func newTestOrderService(repo *mockOrderRepository) OrderService {
	return NewOrderService(repo, zap.NewNop())
}

func validOrderInput(items []domain.OrderItem) CreateOrderInput {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return CreateOrderInput{
		Customer: domain.CustomerInfo{
			Name:    "Ada Obi",
			Phone:   "+2348012345678",
			Address: "12 Allen Avenue, Ikeja, Lagos",
		},
		Items:         items,
		Subtotal:      subtotal,
		Shipping:      2000,
		Total:         subtotal + 2000,
		PaymentMethod: domain.PaymentMethodBankTransfer,
	}
}

func TestProperty_OrderNumbersFollowDailySequence(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("numbers are ORD-YYYYMMDD-NNNN with an increasing daily sequence", prop.ForAll(
		func(count int) bool {
			repo := newMockOrderRepository()
			service := newTestOrderService(repo)
			ctx := context.Background()
			now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

			for i := 1; i <= count; i++ {
				number := service.GenerateOrderNumber(ctx, now)
				expected := fmt.Sprintf("ORD-20260314-%04d", i)
				if number != expected {
					t.Logf("FAIL: Expected %s, got %s", expected, number)
					return false
				}
			}

			// A new day starts its own sequence at 1.
			nextDay := now.AddDate(0, 0, 1)
			if number := service.GenerateOrderNumber(ctx, nextDay); number != "ORD-20260315-0001" {
				t.Logf("FAIL: Expected ORD-20260315-0001, got %s", number)
				return false
			}

			return true
		},
		gen.IntRange(1, 25),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestGenerateOrderNumberFallsBackToTimestamp(t *testing.T) {
	repo := newMockOrderRepository()
	repo.counterDown = true
	service := newTestOrderService(repo)

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	expected := fmt.Sprintf("ORD-20260314-%04d", now.UnixMilli()%10000)

	if number := service.GenerateOrderNumber(context.Background(), now); number != expected {
		t.Fatalf("expected fallback %s, got %s", expected, number)
	}
}

func TestCreateRejectsIncompleteOrders(t *testing.T) {
	repo := newMockOrderRepository()
	service := newTestOrderService(repo)
	ctx := context.Background()

	items := []domain.OrderItem{{ProductID: "p1", VariantID: "v1", ProductName: "Garri", Price: 1500, Quantity: 2}}

	cases := []struct {
		name    string
		mutate  func(*CreateOrderInput)
		wantErr error
	}{
		{"missing name", func(in *CreateOrderInput) { in.Customer.Name = "" }, ErrCustomerIncomplete},
		{"missing phone", func(in *CreateOrderInput) { in.Customer.Phone = "" }, ErrCustomerIncomplete},
		{"missing address", func(in *CreateOrderInput) { in.Customer.Address = "" }, ErrCustomerIncomplete},
		{"no items", func(in *CreateOrderInput) { in.Items = nil }, ErrOrderEmpty},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validOrderInput(items)
			tc.mutate(&input)

			_, err := service.Create(ctx, input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if len(repo.orders) != 0 {
				t.Fatal("rejected order must not be persisted")
			}
		})
	}
}

func TestProperty_CreateRecomputesItemSubtotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every stored item subtotal equals price times quantity", prop.ForAll(
		func(prices []float64, quantities []int) bool {
			n := len(prices)
			if len(quantities) < n {
				n = len(quantities)
			}
			if n == 0 {
				return true
			}

			items := make([]domain.OrderItem, n)
			for i := 0; i < n; i++ {
				items[i] = domain.OrderItem{
					ProductID: fmt.Sprintf("p%d", i),
					VariantID: fmt.Sprintf("v%d", i),
					ProductName: "Item",
					Price:     prices[i],
					Quantity:  quantities[i],
					// Caller-supplied subtotals are ignored and recomputed.
					Subtotal: -1,
				}
			}

			repo := newMockOrderRepository()
			service := newTestOrderService(repo)
			ctx := context.Background()

			result, err := service.Create(ctx, validOrderInput(items))
			if err != nil {
				t.Logf("FAIL: Create failed: %v", err)
				return false
			}

			stored, err := repo.FindByID(ctx, result.OrderID)
			if err != nil {
				t.Logf("FAIL: Stored order not found: %v", err)
				return false
			}

			for i, item := range stored.Items {
				expected := item.Price * float64(item.Quantity)
				if item.Subtotal != expected {
					t.Logf("FAIL: Item %d subtotal %f, expected %f", i, item.Subtotal, expected)
					return false
				}
			}

			return true
		},
		gen.SliceOf(gen.Float64Range(0, 100000)),
		gen.SliceOf(gen.IntRange(1, 50)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCreateSeedsStatusHistory(t *testing.T) {
	repo := newMockOrderRepository()
	service := newTestOrderService(repo)
	ctx := context.Background()

	items := []domain.OrderItem{{ProductID: "p1", VariantID: "v1", ProductName: "Palm oil", Price: 4500, Quantity: 1}}
	result, err := service.Create(ctx, validOrderInput(items))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	order, err := repo.FindByID(ctx, result.OrderID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if order.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.PaymentStatus != domain.PaymentStatusPending {
		t.Fatalf("expected pending payment, got %s", order.PaymentStatus)
	}
	if len(order.StatusHistory) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(order.StatusHistory))
	}

	entry := order.StatusHistory[0]
	if entry.Status != domain.OrderStatusPending || entry.UpdatedBy != SystemActor || entry.Note != "Order created" {
		t.Fatalf("unexpected seed history entry: %+v", entry)
	}
}

func TestProperty_StatusHistoryTracksEveryUpdate(t *testing.T) {
	properties := gopter.NewProperties(nil)

	statusGen := gen.OneConstOf(
		domain.OrderStatusPending,
		domain.OrderStatusConfirmed,
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
	)

	properties.Property("each update appends one entry and the top-level status matches the last", prop.ForAll(
		func(statuses []domain.OrderStatus) bool {
			repo := newMockOrderRepository()
			service := newTestOrderService(repo)
			ctx := context.Background()

			items := []domain.OrderItem{{ProductID: "p1", VariantID: "v1", ProductName: "Eggs", Price: 3500, Quantity: 1}}
			result, err := service.Create(ctx, validOrderInput(items))
			if err != nil {
				t.Logf("FAIL: Create failed: %v", err)
				return false
			}

			for _, status := range statuses {
				if err := service.UpdateStatus(ctx, result.OrderID, status, "", "admin@example.com"); err != nil {
					t.Logf("FAIL: UpdateStatus failed: %v", err)
					return false
				}
			}

			order, err := repo.FindByID(ctx, result.OrderID)
			if err != nil {
				t.Logf("FAIL: Stored order not found: %v", err)
				return false
			}

			// Seed entry plus one entry per update, never rewritten.
			if len(order.StatusHistory) != len(statuses)+1 {
				t.Logf("FAIL: Expected %d history entries, got %d", len(statuses)+1, len(order.StatusHistory))
				return false
			}

			last := order.StatusHistory[len(order.StatusHistory)-1]
			if order.Status != last.Status {
				t.Logf("FAIL: Top-level status %s does not match last entry %s", order.Status, last.Status)
				return false
			}

			for i, status := range statuses {
				entry := order.StatusHistory[i+1]
				if entry.Status != status {
					t.Logf("FAIL: Entry %d status %s, expected %s", i+1, entry.Status, status)
					return false
				}
				if entry.Note != fmt.Sprintf("Status updated to %s", status) {
					t.Logf("FAIL: Entry %d missing default note, got %q", i+1, entry.Note)
					return false
				}
			}

			return true
		},
		gen.SliceOf(statusGen),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newMockOrderRepository()
	service := newTestOrderService(repo)

	err := service.UpdateStatus(context.Background(), "whatever", domain.OrderStatus("teleported"), "", "")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdatePaymentStatusIsIndependent(t *testing.T) {
	repo := newMockOrderRepository()
	service := newTestOrderService(repo)
	ctx := context.Background()

	items := []domain.OrderItem{{ProductID: "p1", VariantID: "v1", ProductName: "Rice", Price: 9000, Quantity: 1}}
	result, err := service.Create(ctx, validOrderInput(items))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := service.UpdateStatus(ctx, result.OrderID, domain.OrderStatusDelivered, "", "admin"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := service.UpdatePaymentStatus(ctx, result.OrderID, domain.PaymentStatusPaid); err != nil {
		t.Fatalf("update payment: %v", err)
	}

	order, _ := repo.FindByID(ctx, result.OrderID)
	if order.Status != domain.OrderStatusDelivered {
		t.Fatalf("payment update must not touch delivery status, got %s", order.Status)
	}
	if order.PaymentStatus != domain.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", order.PaymentStatus)
	}
	// Payment changes leave the status history alone.
	if len(order.StatusHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(order.StatusHistory))
	}

	if err := service.UpdatePaymentStatus(ctx, result.OrderID, domain.PaymentStatus("iou")); !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("expected ErrInvalidPayment, got %v", err)
	}
}
