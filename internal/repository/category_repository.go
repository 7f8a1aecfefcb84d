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
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
)

// CategoryRepository defines the interface for category document access
type CategoryRepository interface {
	Insert(ctx context.Context, category *domain.Category) error
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
}

type categoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &categoryRepository{collection: db.Collection(CollectionCategories)}
}

// Insert writes a new category document.
func (r *categoryRepository) Insert(ctx context.Context, category *domain.Category) error {
	if _, err := r.collection.InsertOne(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// List retrieves every category, sorted by name.
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []*domain.Category{}
	for cursor.Next(ctx) {
		category := &domain.Category{}
		if err := cursor.Decode(category); err != nil {
			return nil, fmt.Errorf("failed to decode category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// FindByID retrieves a category document by id.
func (r *categoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	category := &domain.Category{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return category, nil
}
