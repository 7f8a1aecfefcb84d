package cart

import (
	"time"
)

// Favorite is one saved product with the display fields the storefront
// needs without re-fetching the catalog.
type Favorite struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	AddedAt     int64   `json:"added_at"`
}

// Favorites is a set of saved products keyed by product id, ordered by
// insertion.
type Favorites struct {
	items []Favorite
}

// NewFavorites creates an empty favorites set.
func NewFavorites() *Favorites {
	return &Favorites{items: []Favorite{}}
}

// Add saves the product. Adding an already-saved product is a no-op.
func (f *Favorites) Add(item Favorite) {
	if f.Contains(item.ProductID) {
		return
	}
	item.AddedAt = time.Now().UnixMilli()
	f.items = append(f.items, item)
}

// Remove drops the product from the set.
func (f *Favorites) Remove(productID string) {
	items := f.items[:0]
	for _, item := range f.items {
		if item.ProductID == productID {
			continue
		}
		items = append(items, item)
	}
	f.items = items
}

// Contains reports whether the product is saved.
func (f *Favorites) Contains(productID string) bool {
	for _, item := range f.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Toggle adds the product if absent, removes it if present.
func (f *Favorites) Toggle(item Favorite) {
	if f.Contains(item.ProductID) {
		f.Remove(item.ProductID)
		return
	}
	f.Add(item)
}

// List returns the saved products in insertion order.
func (f *Favorites) List() []Favorite {
	out := make([]Favorite, len(f.items))
	copy(out, f.items)
	return out
}
