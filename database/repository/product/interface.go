// File: database/repository/product/interface.go
package productRepo

import (
	"context"
	"time"

	"tripdesk/database"
	"tripdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ProductRepository stores upstream product document snapshots.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Upsert(ctx context.Context, doc *models.Product) error
	Delete(ctx context.Context, id string) error
	ListStale(ctx context.Context, olderThan time.Duration, limit int) ([]string, error)
	EnsureIndexes() error
}

type mongoProductRepo struct {
	coll *mongo.Collection
}

// NewMongoProductRepo constructs a new MongoDB ProductRepository.
func NewMongoProductRepo() ProductRepository {
	db := database.MongoClient.Database("tripdesk")
	return &mongoProductRepo{
		coll: db.Collection("products"),
	}
}
