package domain

import (
	"time"
)

// OrderStatus is the delivery lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every delivery status, in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the known delivery statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// PaymentStatus tracks payment independently of delivery status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentMethod is how the customer intends to pay.
// Card is a placeholder with no gateway behind it.
type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// OrderItem is a line item snapshot taken at purchase time.
// Immutable after order creation.
type OrderItem struct {
	ProductID    string  `json:"product_id" bson:"productId"`
	ProductName  string  `json:"product_name" bson:"productName"`
	ProductImage string  `json:"product_image" bson:"productImage"`
	VariantID    string  `json:"variant_id" bson:"variantId"`
	VariantName  string  `json:"variant_name" bson:"variantName"`
	Price        float64 `json:"price" bson:"price"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	Subtotal     float64 `json:"subtotal" bson:"subtotal"`
}

// CustomerInfo is the customer snapshot copied onto the order at
// checkout; it is not a live reference to a user profile.
type CustomerInfo struct {
	Name           string `json:"name" bson:"name"`
	Email          string `json:"email" bson:"email"`
	Phone          string `json:"phone" bson:"phone"`
	Address        string `json:"address" bson:"address"`
	City           string `json:"city,omitempty" bson:"city,omitempty"`
	State          string `json:"state,omitempty" bson:"state,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty" bson:"additionalInfo,omitempty"`
}

// StatusHistoryEntry is one append-only record of a status change
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	UpdatedBy string      `json:"updated_by" bson:"updatedBy"`
	Note      string      `json:"note,omitempty" bson:"note,omitempty"`
}

// Order represents an order document. Line items and totals are frozen
// at creation; only status fields and the history log change afterwards.
type Order struct {
	ID            string               `json:"id" bson:"_id"`
	OrderNumber   string               `json:"order_number" bson:"orderNumber"`
	Customer      CustomerInfo         `json:"customer" bson:"customer"`
	UserID        string               `json:"user_id,omitempty" bson:"userId,omitempty"`
	Items         []OrderItem          `json:"items" bson:"items"`
	Subtotal      float64              `json:"subtotal" bson:"subtotal"`
	Shipping      float64              `json:"shipping" bson:"shipping"`
	Tax           float64              `json:"tax" bson:"tax"`
	Discount      float64              `json:"discount" bson:"discount"`
	Total         float64              `json:"total" bson:"total"`
	PaymentMethod PaymentMethod        `json:"payment_method" bson:"paymentMethod"`
	PaymentStatus PaymentStatus        `json:"payment_status" bson:"paymentStatus"`
	Status        OrderStatus          `json:"status" bson:"status"`
	StatusHistory []StatusHistoryEntry `json:"status_history" bson:"statusHistory"`
	DeliveryDate  *time.Time           `json:"delivery_date,omitempty" bson:"deliveryDate,omitempty"`
	CreatedAt     time.Time            `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updatedAt"`
}
