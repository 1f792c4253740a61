package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "spacebook/database/repository/booking"
	propertyRepo "spacebook/database/repository/property"
	"spacebook/models"
	"spacebook/utils"
)

// occupyingStatuses are the statuses that hold a property's calendar.
// REJECTED and COMPLETED bookings do not occupy dates.
var occupyingStatuses = []string{models.BookingStatusPending, models.BookingStatusAccepted}

// CreateBooking validates the candidate range, prices it against the
// property's current rate, and persists a PENDING booking unless an
// existing PENDING/ACCEPTED booking overlaps. The overlap check and the
// insert run under a per-property lock.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	stay, err := ValidateStayRange(input.StartDate, input.EndDate, s.now())
	if err != nil {
		return nil, err
	}

	property, err := s.Properties.GetByID(ctx, input.PropertyID)
	if errors.Is(err, propertyRepo.ErrNotFound) {
		return nil, newError(KindNotFound, "property not found")
	}
	if err != nil {
		return nil, repoUnavailable(err)
	}
	if input.RequesterID == property.OwnerID {
		return nil, newError(KindSelfBookingForbidden, "owners cannot book their own property")
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		PropertyID:  property.ID,
		RequesterID: input.RequesterID,
		OwnerID:     property.OwnerID,
		StartDate:   stay.StartDate(),
		EndDate:     stay.EndDate(),
		Message:     input.Message,
		Status:      models.BookingStatusPending,
		TotalPrice:  TotalPrice(stay.Days, property.MonthlyPrice),
		CreatedAt:   time.Now().UTC(),
	}

	lock := s.locks.get(property.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkAndInsert(ctx, booking); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("propertyID", booking.PropertyID),
		zap.String("range", booking.StartDate+".."+booking.EndDate),
		zap.Float64("totalPrice", booking.TotalPrice),
	)
	return booking, nil
}

// checkAndInsert runs the overlap check followed by the insert. A
// storage-level conflict on insert gets one retry: the range is
// re-checked and, if genuinely taken, reported unavailable.
func (s *DefaultBookingService) checkAndInsert(ctx context.Context, booking *models.Booking) error {
	for attempt := 0; ; attempt++ {
		overlapping, err := s.Repo.FindOverlapping(ctx, booking.PropertyID, booking.StartDate, booking.EndDate, occupyingStatuses)
		if err != nil {
			return repoUnavailable(err)
		}
		if len(overlapping) > 0 {
			return newError(KindDateRangeUnavailable, "the requested dates are no longer available")
		}

		err = s.Repo.Insert(ctx, booking)
		if err == nil {
			return nil
		}
		if attempt > 0 {
			return repoUnavailable(err)
		}
		utils.GetLogger().Warn("booking insert conflicted, retrying once",
			zap.String("propertyID", booking.PropertyID), zap.Error(err))
	}
}

// AcceptBooking transitions a PENDING booking to ACCEPTED. Only the
// property owner recorded on the booking may accept.
func (s *DefaultBookingService) AcceptBooking(ctx context.Context, bookingID, actingUserID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, actingUserID, models.BookingStatusAccepted)
}

// RejectBooking transitions a PENDING booking to REJECTED, freeing its
// date range for future bookings.
func (s *DefaultBookingService) RejectBooking(ctx context.Context, bookingID, actingUserID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, actingUserID, models.BookingStatusRejected)
}

func (s *DefaultBookingService) transition(ctx context.Context, bookingID, actingUserID, newStatus string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, newError(KindNotFound, "booking not found")
	}
	if err != nil {
		return nil, repoUnavailable(err)
	}

	if actingUserID != booking.OwnerID {
		return nil, newError(KindUnauthorized, "only the property owner can act on this booking")
	}
	if booking.IsTerminal() {
		return nil, newError(KindInvalidTransition, "booking is no longer pending")
	}

	updated, err := s.Repo.UpdateStatus(ctx, bookingID, models.BookingStatusPending, newStatus)
	if errors.Is(err, bookingRepo.ErrVersionConflict) {
		// A concurrent accept/reject won the race after our read.
		return nil, newError(KindInvalidTransition, "booking is no longer pending")
	}
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, newError(KindNotFound, "booking not found")
	}
	if err != nil {
		return nil, repoUnavailable(err)
	}

	utils.GetLogger().Info("booking transitioned",
		zap.String("bookingID", updated.ID),
		zap.String("status", updated.Status),
	)
	return updated, nil
}

// ListForRequester returns the bookings the user created.
func (s *DefaultBookingService) ListForRequester(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, repoUnavailable(err)
	}
	return bookings, nil
}

// ListForOwner returns the bookings on properties the user owns.
func (s *DefaultBookingService) ListForOwner(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, repoUnavailable(err)
	}
	return bookings, nil
}

// CompleteElapsed is the time-driven transition source: ACCEPTED
// bookings whose end date has passed become COMPLETED. Conflicts are
// skipped, never overwritten.
func (s *DefaultBookingService) CompleteElapsed(ctx context.Context) (int, error) {
	today := s.now().Format(DateLayout)
	elapsed, err := s.Repo.ListEndedBefore(ctx, today, models.BookingStatusAccepted)
	if err != nil {
		return 0, repoUnavailable(err)
	}

	completed := 0
	for _, b := range elapsed {
		if _, err := s.Repo.UpdateStatus(ctx, b.ID, models.BookingStatusAccepted, models.BookingStatusCompleted); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) || errors.Is(err, bookingRepo.ErrNotFound) {
				continue
			}
			return completed, repoUnavailable(err)
		}
		completed++
	}
	return completed, nil
}

func repoUnavailable(err error) *Error {
	return newError(KindRepositoryUnavailable, "booking storage is unavailable: "+err.Error())
}
