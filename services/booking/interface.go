package booking

import (
	"context"
	"time"

	bookingRepo "spacebook/database/repository/booking"
	propertyRepo "spacebook/database/repository/property"
	"spacebook/models"
)

// CreateBookingInput is the requester-side creation request.
type CreateBookingInput struct {
	PropertyID  string
	RequesterID string
	StartDate   string
	EndDate     string
	Message     string
}

// BookingService owns the booking lifecycle: creation with overlap
// protection, owner-side accept/reject, read projections, and the
// time-driven completion sweep.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	AcceptBooking(ctx context.Context, bookingID, actingUserID string) (*models.Booking, error)
	RejectBooking(ctx context.Context, bookingID, actingUserID string) (*models.Booking, error)
	ListForRequester(ctx context.Context, userID string) ([]models.Booking, error)
	ListForOwner(ctx context.Context, userID string) ([]models.Booking, error)
	// CompleteElapsed moves ACCEPTED bookings whose end date has passed
	// to COMPLETED and returns how many were transitioned.
	CompleteElapsed(ctx context.Context) (int, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	Properties propertyRepo.PropertyRepository
	// Now supplies the reference date for validation; defaults to
	// time.Now when nil.
	Now func() time.Time

	locks *propertyLocks
}

// NewDefaultBookingService wires a lifecycle engine over the given stores.
func NewDefaultBookingService(repo bookingRepo.BookingRepository, properties propertyRepo.PropertyRepository) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:       repo,
		Properties: properties,
		locks:      newPropertyLocks(),
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
