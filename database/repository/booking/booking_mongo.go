package bookingRepo

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

// MongoBookingRepo is the MongoDB-backed BookingRepository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a repository over the "bookings" collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.DB().Collection("bookings")}
}

// Insert stores a new booking document.
func (repo *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// FindOverlapping returns bookings on the property intersecting the
// inclusive [start, end] range. Dates are "YYYY-MM-DD" strings, so
// lexicographic comparison is date comparison.
func (repo *MongoBookingRepo) FindOverlapping(ctx context.Context, propertyID, start, end string, statuses []string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"property_id": propertyID,
		"status":      bson.M{"$in": statuses},
		"start_date":  bson.M{"$lte": end},
		"end_date":    bson.M{"$gte": start},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding overlapping bookings: %w", err)
	}
	return bookings, nil
}

// ListByRequester returns all bookings created by the given user.
func (repo *MongoBookingRepo) ListByRequester(ctx context.Context, userID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"requester_id": userID})
}

// ListByOwner returns all bookings on properties the given user owned
// at booking time.
func (repo *MongoBookingRepo) ListByOwner(ctx context.Context, userID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"owner_id": userID})
}

// ListEndedBefore returns bookings in the given status ending strictly
// before the given date.
func (repo *MongoBookingRepo) ListEndedBefore(ctx context.Context, date, status string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"status": status, "end_date": bson.M{"$lt": date}})
}

func (repo *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus performs a conditional transition: the update only
// matches while the booking is still in expectedStatus, which makes the
// PENDING-only rule atomic under concurrent accept/reject.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"id": id, "status": expectedStatus}
	update := bson.M{"$set": bson.M{"status": newStatus}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err := repo.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a missing booking from a lost status race.
		if _, getErr := repo.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking %s status: %w", id, err)
	}
	return &updated, nil
}
