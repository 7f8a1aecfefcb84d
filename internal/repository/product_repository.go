package repository

import (
	"context"
	"errors"
	"fmt"

	"freshfood/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product document access
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListActive(ctx context.Context) ([]*domain.Product, error)
}

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{collection: db.Collection(CollectionProducts)}
}

// Insert writes a new product document.
func (r *productRepository) Insert(ctx context.Context, product *domain.Product) error {
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// Update replaces the product document with the given id.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// FindByID retrieves a product document by id.
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindBySlug retrieves a product document by slug (equality filter, limit 1).
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by slug: %w", err)
	}
	return product, nil
}

// ListAll retrieves every product, newest first.
func (r *productRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, bson.M{})
}

// ListActive retrieves products with isActive == true, newest first.
func (r *productRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, bson.M{"isActive": true})
}

func (r *productRepository) list(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []*domain.Product{}
	for cursor.Next(ctx) {
		product := &domain.Product{}
		if err := cursor.Decode(product); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
