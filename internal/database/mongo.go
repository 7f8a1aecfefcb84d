package database

import (
	"context"
	"fmt"
	"time"

	"freshfood/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Service wraps the Mongo client and the application database handle
type Service struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the Mongo connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return &Service{
		client: client,
		db:     db,
	}, nil
}

// DB returns the application database handle.
func (s *Service) DB() *mongo.Database {
	return s.db
}

// Health reports connection status for the health endpoint.
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return map[string]string{
			"status": "down",
			"error":  err.Error(),
		}
	}

	return map[string]string{
		"status":   "up",
		"database": s.db.Name(),
	}
}

// Close disconnects the Mongo client.
func (s *Service) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
