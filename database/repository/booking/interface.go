package bookingRepo

import (
	"context"
	"errors"

	"spacebook/models"
)

// Sentinel errors surfaced by repository implementations. Callers match
// with errors.Is; the lifecycle engine translates them into its own
// error kinds.
var (
	// ErrNotFound indicates no booking exists with the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrVersionConflict indicates a conditional update found the
	// booking in a different status than expected.
	ErrVersionConflict = errors.New("booking status conflict")
)

// BookingRepository is the durable store for bookings. Implementations
// must make UpdateStatus an atomic compare-and-set on the status field.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FindOverlapping returns bookings on the property whose inclusive
	// date range intersects [start, end] and whose status is in statuses.
	FindOverlapping(ctx context.Context, propertyID, start, end string, statuses []string) ([]models.Booking, error)
	ListByRequester(ctx context.Context, userID string) ([]models.Booking, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Booking, error)
	// UpdateStatus transitions the booking from expectedStatus to
	// newStatus and returns the updated record. Fails with
	// ErrVersionConflict when the booking is no longer in expectedStatus.
	UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string) (*models.Booking, error)
	// ListEndedBefore returns bookings in the given status whose end
	// date is strictly before the given date. Used by the completion sweep.
	ListEndedBefore(ctx context.Context, date, status string) ([]models.Booking, error)
}
