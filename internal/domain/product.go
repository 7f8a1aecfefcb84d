package domain

import (
	"time"
)

// ProductVariant is a purchasable unit of a product (size/pack option)
type ProductVariant struct {
	ID     string  `json:"id" bson:"id"`
	Name   string  `json:"name" bson:"name"`
	Price  float64 `json:"price" bson:"price"`
	Stock  int     `json:"stock" bson:"stock"`
	Weight string  `json:"weight,omitempty" bson:"weight,omitempty"`
}

// Product represents a product document in the catalog.
// Price, Image and InStock are denormalized from Variants[0]/Images[0]
// and recomputed on every write through the catalog service.
type Product struct {
	ID          string           `json:"id" bson:"_id"`
	Name        string           `json:"name" bson:"name"`
	Slug        string           `json:"slug" bson:"slug"`
	Description string           `json:"description" bson:"description"`
	Category    string           `json:"category" bson:"category"`
	Image       string           `json:"image" bson:"image"`
	Images      []string         `json:"images" bson:"images"`
	Variants    []ProductVariant `json:"variants" bson:"variants"`
	Features    []string         `json:"features" bson:"features"`
	Featured    bool             `json:"featured" bson:"featured"`
	Price       float64          `json:"price" bson:"price"`
	InStock     bool             `json:"in_stock" bson:"inStock"`
	Rating      float64          `json:"rating" bson:"rating"`
	Reviews     int              `json:"reviews" bson:"reviews"`
	IsActive    bool             `json:"is_active" bson:"isActive"`
	CreatedBy   string           `json:"created_by,omitempty" bson:"createdBy,omitempty"`
	CreatedAt   time.Time        `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updatedAt"`
}

// TotalStock sums stock over all variants.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// Variant returns the variant with the given id, or nil.
func (p *Product) Variant(variantID string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// Category represents a product category document
type Category struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
}
