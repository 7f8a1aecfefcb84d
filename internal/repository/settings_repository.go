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

// StoreSettingsID is the well-known id of the single settings document.
const StoreSettingsID = "store"

var (
	ErrSettingsNotFound = errors.New("store settings not found")
)

// SettingsRepository defines the interface for store settings access
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.StoreSettings, error)
	Save(ctx context.Context, settings *domain.StoreSettings) error
}

type settingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a new instance of SettingsRepository
func NewSettingsRepository(db *mongo.Database) SettingsRepository {
	return &settingsRepository{collection: db.Collection(CollectionSettings)}
}

// Get retrieves the store settings document.
func (r *settingsRepository) Get(ctx context.Context) (*domain.StoreSettings, error) {
	settings := &domain.StoreSettings{}
	err := r.collection.FindOne(ctx, bson.M{"_id": StoreSettingsID}).Decode(settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to find store settings: %w", err)
	}
	return settings, nil
}

// Save upserts the store settings document.
func (r *settingsRepository) Save(ctx context.Context, settings *domain.StoreSettings) error {
	settings.ID = StoreSettingsID

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": StoreSettingsID}, settings, opts); err != nil {
		return fmt.Errorf("failed to save store settings: %w", err)
	}
	return nil
}
