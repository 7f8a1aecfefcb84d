package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freshfood/internal/domain"
	"freshfood/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProductNoVariants = errors.New("product must have at least one variant")
	ErrVariantNotFound   = errors.New("variant not found")
)

// VariantInput describes one variant on create/update.
type VariantInput struct {
	ID     string  `json:"id"`
	Name   string  `json:"name" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
	Stock  int     `json:"stock" validate:"gte=0"`
	Weight string  `json:"weight"`
}

// CreateProductInput carries the fields an admin supplies for a new product.
type CreateProductInput struct {
	Name        string         `json:"name" validate:"required"`
	Slug        string         `json:"slug" validate:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category" validate:"required"`
	Images      []string       `json:"images"`
	Variants    []VariantInput `json:"variants" validate:"required,min=1,dive"`
	Features    []string       `json:"features"`
	Featured    bool           `json:"featured"`
}

// UpdateProductInput carries a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string        `json:"name"`
	Slug        *string        `json:"slug"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	Images      []string       `json:"images"`
	Variants    []VariantInput `json:"variants"`
	Features    []string       `json:"features"`
	Featured    *bool          `json:"featured"`
}

// VariantPatch carries a partial update of a single variant.
type VariantPatch struct {
	Name   *string  `json:"name"`
	Price  *float64 `json:"price"`
	Stock  *int     `json:"stock"`
	Weight *string  `json:"weight"`
}

// ProductService defines the catalog business logic
type ProductService interface {
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListActive(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput, createdBy string) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	UpdateVariant(ctx context.Context, productID, variantID string, patch VariantPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	products repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) ListActive(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}

// Create assigns variant ids, recomputes the denormalized price/image/stock
// fields and writes the product document.
func (s *productService) Create(ctx context.Context, input CreateProductInput, createdBy string) (*domain.Product, error) {
	if len(input.Variants) == 0 {
		return nil, ErrProductNoVariants
	}

	variants := make([]domain.ProductVariant, len(input.Variants))
	for i, v := range input.Variants {
		variants[i] = domain.ProductVariant{
			ID:     uuid.New().String(),
			Name:   v.Name,
			Price:  v.Price,
			Stock:  v.Stock,
			Weight: v.Weight,
		}
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Category:    input.Category,
		Images:      input.Images,
		Variants:    variants,
		Features:    input.Features,
		Featured:    input.Featured,
		Rating:      0,
		Reviews:     0,
		IsActive:    true,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	denormalize(product)

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Update applies the partial input, recomputing denormalized fields when
// variants or images change, and returns the stored product.
func (s *productService) Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Slug != nil {
		product.Slug = *input.Slug
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Features != nil {
		product.Features = input.Features
	}
	if input.Variants != nil {
		variants := make([]domain.ProductVariant, len(input.Variants))
		for i, v := range input.Variants {
			variantID := v.ID
			if variantID == "" {
				variantID = uuid.New().String()
			}
			variants[i] = domain.ProductVariant{
				ID:     variantID,
				Name:   v.Name,
				Price:  v.Price,
				Stock:  v.Stock,
				Weight: v.Weight,
			}
		}
		product.Variants = variants
	}

	denormalize(product)
	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// UpdateVariant patches a single variant in place and re-runs the full
// update path so denormalized fields stay consistent.
func (s *productService) UpdateVariant(ctx context.Context, productID, variantID string, patch VariantPatch) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variant := product.Variant(variantID)
	if variant == nil {
		return nil, ErrVariantNotFound
	}

	if patch.Name != nil {
		variant.Name = *patch.Name
	}
	if patch.Price != nil {
		variant.Price = *patch.Price
	}
	if patch.Stock != nil {
		variant.Stock = *patch.Stock
	}
	if patch.Weight != nil {
		variant.Weight = *patch.Weight
	}

	denormalize(product)
	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}

	return product, nil
}

// Delete soft-deletes the product: isActive flips to false and every
// other field, variants included, is left unchanged.
func (s *productService) Delete(ctx context.Context, id string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.IsActive = false
	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// denormalize recomputes the base price (variants[0]), primary image
// (images[0]) and inStock flag from the authoritative nested lists.
func denormalize(p *domain.Product) {
	if len(p.Variants) > 0 {
		p.Price = p.Variants[0].Price
	} else {
		p.Price = 0
	}

	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	} else {
		p.Image = ""
	}

	p.InStock = p.TotalStock() > 0
}
