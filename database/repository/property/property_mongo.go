package propertyRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacebook/database"
	"spacebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

// MongoPropertyRepo is the MongoDB-backed PropertyRepository.
type MongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo returns a repository over the "properties" collection.
func NewMongoPropertyRepo() *MongoPropertyRepo {
	return &MongoPropertyRepo{coll: database.DB().Collection("properties")}
}

// EnsureIndexes creates the unique id index.
func (repo *MongoPropertyRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create property indexes: %w", err)
	}
	return nil
}

// Insert stores a new property document.
func (repo *MongoPropertyRepo) Insert(ctx context.Context, property *models.Property) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, property); err != nil {
		return fmt.Errorf("error creating property: %w", err)
	}
	return nil
}

// GetByID retrieves a property by its ID.
func (repo *MongoPropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var property models.Property
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching property %s: %w", id, err)
	}
	return &property, nil
}

// List returns all properties, newest first.
func (repo *MongoPropertyRepo) List(ctx context.Context) ([]models.Property, error) {
	return repo.list(ctx, bson.M{})
}

// ListByOwner returns all properties owned by the given user.
func (repo *MongoPropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	return repo.list(ctx, bson.M{"owner_id": ownerID})
}

func (repo *MongoPropertyRepo) list(ctx context.Context, filter bson.M) ([]models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("error decoding properties: %w", err)
	}
	return properties, nil
}

// Delete removes a property record.
func (repo *MongoPropertyRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting property %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
