// File: database/repository/product/crud.go
package productRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripdesk/models"
)

func (r *mongoProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.Product
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch product with id %s: %w", id, err)
	}
	return &doc, nil
}

func (r *mongoProductRepo) Upsert(ctx context.Context, doc *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": doc.ID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", doc.ID, err)
	}
	return nil
}

func (r *mongoProductRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListStale returns the IDs of snapshots not refreshed within olderThan,
// oldest first. Used by the background refresh worker.
func (r *mongoProductRepo) ListStale(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-olderThan)
	filter := bson.M{"fetched_at": bson.M{"$lt": cutoff}}
	opts := options.Find().
		SetProjection(bson.M{"id": 1}).
		SetSort(bson.D{{Key: "fetched_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale products: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode stale product row: %w", err)
		}
		ids = append(ids, row.ID)
	}
	return ids, nil
}
