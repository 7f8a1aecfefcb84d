package domain

import (
	"time"
)

// StoreSettings holds store-wide configuration kept in the settings
// collection as a single well-known document.
type StoreSettings struct {
	ID          string    `json:"id" bson:"_id"`
	StoreName   string    `json:"store_name" bson:"storeName"`
	Currency    string    `json:"currency" bson:"currency"`
	ShippingFee float64   `json:"shipping_fee" bson:"shippingFee"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt"`
}
