package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"freshfood/internal/domain"
	"freshfood/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Mock repository for testing
type mockProductRepository struct {
	products map[string]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (m *mockProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, product := range m.products {
		if product.Slug == slug {
			copied := *product
			return &copied, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		products = append(products, product)
	}
	return products, nil
}

func (m *mockProductRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	for _, product := range m.products {
		if product.IsActive {
			products = append(products, product)
		}
	}
	return products, nil
}

func sampleCreateInput() CreateProductInput {
	return CreateProductInput{
		Name:     "Palm Oil",
		Slug:     "palm-oil",
		Category: "oils",
		Images:   []string{"/images/palm-oil-1.jpg", "/images/palm-oil-2.jpg"},
		Variants: []VariantInput{
			{Name: "1 Litre", Price: 3500, Stock: 12},
			{Name: "5 Litres", Price: 15000, Stock: 4},
		},
	}
}

func TestCreateDenormalizesListingFields(t *testing.T) {
	repo := newMockProductRepository()
	service := NewProductService(repo)
	ctx := context.Background()

	product, err := service.Create(ctx, sampleCreateInput(), "admin@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if product.Price != 3500 {
		t.Fatalf("expected base price from first variant, got %f", product.Price)
	}
	if product.Image != "/images/palm-oil-1.jpg" {
		t.Fatalf("expected primary image from first entry, got %s", product.Image)
	}
	if !product.InStock {
		t.Fatal("expected in-stock with positive variant stock")
	}
	if !product.IsActive {
		t.Fatal("new products must start active")
	}
	for _, v := range product.Variants {
		if v.ID == "" {
			t.Fatal("variant ids must be assigned on create")
		}
	}

	_, err = service.Create(ctx, CreateProductInput{Name: "Empty", Slug: "empty", Category: "misc"}, "admin")
	if !errors.Is(err, ErrProductNoVariants) {
		t.Fatalf("expected ErrProductNoVariants, got %v", err)
	}
}

func TestProperty_DenormalizedFieldsTrackVariants(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("price, image and inStock always mirror the nested lists", prop.ForAll(
		func(prices []float64, stocks []int, images []string) bool {
			n := len(prices)
			if len(stocks) < n {
				n = len(stocks)
			}
			if n == 0 {
				return true
			}

			variants := make([]VariantInput, n)
			totalStock := 0
			for i := 0; i < n; i++ {
				variants[i] = VariantInput{
					Name:  fmt.Sprintf("Pack %d", i),
					Price: prices[i],
					Stock: stocks[i],
				}
				totalStock += stocks[i]
			}

			repo := newMockProductRepository()
			service := NewProductService(repo)
			ctx := context.Background()

			input := sampleCreateInput()
			input.Variants = variants
			input.Images = images

			product, err := service.Create(ctx, input, "admin")
			if err != nil {
				t.Logf("FAIL: Create failed: %v", err)
				return false
			}

			if product.Price != prices[0] {
				t.Logf("FAIL: Price %f, expected first variant price %f", product.Price, prices[0])
				return false
			}

			expectedImage := ""
			if len(images) > 0 {
				expectedImage = images[0]
			}
			if product.Image != expectedImage {
				t.Logf("FAIL: Image %q, expected %q", product.Image, expectedImage)
				return false
			}

			if product.InStock != (totalStock > 0) {
				t.Logf("FAIL: InStock %v with total stock %d", product.InStock, totalStock)
				return false
			}

			return true
		},
		gen.SliceOf(gen.Float64Range(0, 100000)),
		gen.SliceOf(gen.IntRange(0, 50)),
		gen.SliceOf(gen.RegexMatch(`/images/[a-z]{3,10}\.jpg`)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestUpdateVariantRecomputesDenormalizedFields(t *testing.T) {
	repo := newMockProductRepository()
	service := NewProductService(repo)
	ctx := context.Background()

	product, err := service.Create(ctx, sampleCreateInput(), "admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Drain both variants; the second patch should flip inStock off.
	zero := 0
	if _, err := service.UpdateVariant(ctx, product.ID, product.Variants[0].ID, VariantPatch{Stock: &zero}); err != nil {
		t.Fatalf("patch first variant: %v", err)
	}
	updated, err := service.UpdateVariant(ctx, product.ID, product.Variants[1].ID, VariantPatch{Stock: &zero})
	if err != nil {
		t.Fatalf("patch second variant: %v", err)
	}
	if updated.InStock {
		t.Fatal("expected out of stock after draining every variant")
	}

	// Repricing the first variant moves the listing price.
	newPrice := 4200.0
	updated, err = service.UpdateVariant(ctx, product.ID, product.Variants[0].ID, VariantPatch{Price: &newPrice})
	if err != nil {
		t.Fatalf("reprice: %v", err)
	}
	if updated.Price != newPrice {
		t.Fatalf("expected listing price %f, got %f", newPrice, updated.Price)
	}

	if _, err := service.UpdateVariant(ctx, product.ID, "no-such-variant", VariantPatch{Price: &newPrice}); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	repo := newMockProductRepository()
	service := NewProductService(repo)
	ctx := context.Background()

	product, err := service.Create(ctx, sampleCreateInput(), "admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := service.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stored, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatal("soft-deleted product must remain in the collection")
	}
	if stored.IsActive {
		t.Fatal("expected isActive=false after delete")
	}
	if len(stored.Variants) != len(product.Variants) || stored.Name != product.Name {
		t.Fatal("delete must not change anything besides isActive")
	}

	// Hidden from the storefront, still visible to admin listings.
	active, _ := repo.ListActive(ctx)
	if len(active) != 0 {
		t.Fatalf("expected no active products, got %d", len(active))
	}
	all, _ := repo.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected product retained in full listing, got %d", len(all))
	}
}

func TestUpdateAppliesPartialInput(t *testing.T) {
	repo := newMockProductRepository()
	service := NewProductService(repo)
	ctx := context.Background()

	product, err := service.Create(ctx, sampleCreateInput(), "admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Red Palm Oil"
	featured := true
	updated, err := service.Update(ctx, product.ID, UpdateProductInput{Name: &name, Featured: &featured})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != name || !updated.Featured {
		t.Fatalf("partial fields not applied: %+v", updated)
	}
	if updated.Slug != product.Slug || updated.Category != product.Category {
		t.Fatal("nil fields must be left untouched")
	}
	if len(updated.Variants) != 2 {
		t.Fatalf("variants must survive a partial update, got %d", len(updated.Variants))
	}

	if _, err := service.Update(ctx, "missing", UpdateProductInput{Name: &name}); !errors.Is(err, repository.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
