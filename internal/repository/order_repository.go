package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freshfood/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order document access
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	AppendStatus(ctx context.Context, id string, entry domain.StatusHistoryEntry) error
	SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error
	NextDailySequence(ctx context.Context, day time.Time) (int, error)
}

type orderRepository struct {
	orders   *mongo.Collection
	counters *mongo.Collection
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{
		orders:   db.Collection(CollectionOrders),
		counters: db.Collection(CollectionCounters),
	}
}

// Insert writes a new order document.
func (r *orderRepository) Insert(ctx context.Context, order *domain.Order) error {
	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// FindByID retrieves an order document by id.
func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByNumber retrieves an order document by its display order number.
func (r *orderRepository) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"orderNumber": orderNumber})
}

func (r *orderRepository) findOne(ctx context.Context, filter bson.M) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.orders.FindOne(ctx, filter).Decode(order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

// ListAll retrieves every order, newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{})
}

// ListByStatus retrieves orders with the given delivery status, newest first.
func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"status": status})
}

// ListByUser retrieves a customer's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *orderRepository) list(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []*domain.Order{}
	for cursor.Next(ctx) {
		order := &domain.Order{}
		if err := cursor.Decode(order); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// AppendStatus pushes one history entry and overwrites the top-level
// status to match it.
func (r *orderRepository) AppendStatus(ctx context.Context, id string, entry domain.StatusHistoryEntry) error {
	update := bson.M{
		"$set": bson.M{
			"status":    entry.Status,
			"updatedAt": entry.Timestamp,
		},
		"$push": bson.M{"statusHistory": entry},
	}

	result, err := r.orders.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SetPaymentStatus updates the payment status independently of the
// delivery status.
func (r *orderRepository) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	update := bson.M{
		"$set": bson.M{
			"paymentStatus": status,
			"updatedAt":     time.Now(),
		},
	}

	result, err := r.orders.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// NextDailySequence atomically increments the per-day order counter and
// returns the new value. The counter document is keyed by the date so
// two concurrent checkouts can never observe the same sequence.
func (r *orderRepository) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	key := fmt.Sprintf("orders-%s", day.Format("20060102"))

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		ID       string `bson:"_id"`
		Sequence int    `bson:"sequence"`
	}

	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"sequence": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to increment order counter: %w", err)
	}

	return counter.Sequence, nil
}
