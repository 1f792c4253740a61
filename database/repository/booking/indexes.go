package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repository queries rely on.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Overlap scans filter by property and status, then by range.
			Keys: bson.D{
				{Key: "property_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "start_date", Value: 1},
			},
		},
		{Keys: bson.D{{Key: "requester_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{
			// Completion sweep scans by status and end date.
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "end_date", Value: 1},
			},
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
