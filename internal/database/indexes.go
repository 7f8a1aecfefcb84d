package database

import (
	"context"
	"fmt"

	"freshfood/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes declares the indexes every deployment needs. The
// unique indexes are what actually enforce email, order number and
// category name uniqueness; the repository pre-checks only exist for
// friendlier error messages.
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		repository.CollectionUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		repository.CollectionOrders: {
			{
				Keys:    bson.D{{Key: "orderNumber", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		repository.CollectionCategories: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		repository.CollectionProducts: {
			{
				Keys: bson.D{{Key: "slug", Value: 1}},
			},
		},
	}
}

// ensureIndexes creates the declared indexes, which is a no-op for any
// index that already exists.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, models := range collectionIndexes() {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}
	return nil
}
