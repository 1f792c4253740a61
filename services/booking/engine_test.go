package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "spacebook/database/repository/booking"
	propertyRepo "spacebook/database/repository/property"
	"spacebook/models"
)

const (
	ownerID     = "U1"
	requesterID = "U2"
	otherUserID = "U3"
)

func newTestService(t *testing.T) (*DefaultBookingService, *propertyRepo.MemoryPropertyRepo) {
	t.Helper()
	properties := propertyRepo.NewMemoryPropertyRepo()
	svc := NewDefaultBookingService(bookingRepo.NewMemoryBookingRepo(), properties)
	svc.Now = func() time.Time {
		return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	}

	require.NoError(t, properties.Insert(context.Background(), &models.Property{
		ID:           "P1",
		OwnerID:      ownerID,
		Title:        "Warehouse on 5th",
		Address:      "5th Street 12",
		MonthlyPrice: 30000,
		CreatedAt:    time.Now(),
	}))
	return svc, properties
}

func createStay(t *testing.T, svc *DefaultBookingService, requester, start, end string) *models.Booking {
	t.Helper()
	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID:  "P1",
		RequesterID: requester,
		StartDate:   start,
		EndDate:     end,
	})
	require.NoError(t, err)
	return b
}

func TestCreateBookingPersistsPending(t *testing.T) {
	svc, _ := newTestService(t)

	b := createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, ownerID, b.OwnerID)
	assert.Equal(t, requesterID, b.RequesterID)
	// 10 days round up to one billed month.
	assert.InDelta(t, 30000.0, b.TotalPrice, 1e-9)

	stored, err := svc.Repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, stored.ID)
}

func TestCreateBookingValidationFailureWritesNothing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID:  "P1",
		RequesterID: requesterID,
		StartDate:   "2025-01-01",
		EndDate:     "2025-01-05",
	})
	require.Error(t, err)
	assert.Equal(t, KindStartInPast, KindOf(err))

	bookings, err := svc.ListForOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBookingUnknownProperty(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID:  "missing",
		RequesterID: requesterID,
		StartDate:   "2025-03-01",
		EndDate:     "2025-03-10",
	})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateBookingSelfBookingForbidden(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID:  "P1",
		RequesterID: ownerID,
		StartDate:   "2025-03-01",
		EndDate:     "2025-03-10",
	})
	require.Error(t, err)
	assert.Equal(t, KindSelfBookingForbidden, KindOf(err))
}

func TestCreateBookingOverlapRejected(t *testing.T) {
	svc, _ := newTestService(t)

	createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")

	// Identical, contained, and edge-touching ranges all conflict.
	for _, r := range [][2]string{
		{"2025-03-01", "2025-03-10"},
		{"2025-03-05", "2025-03-08"},
		{"2025-03-10", "2025-03-12"},
		{"2025-02-25", "2025-03-01"},
	} {
		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID:  "P1",
			RequesterID: otherUserID,
			StartDate:   r[0],
			EndDate:     r[1],
		})
		require.Error(t, err, "range %v", r)
		assert.Equal(t, KindDateRangeUnavailable, KindOf(err))
	}

	// A disjoint range is fine.
	createStay(t, svc, otherUserID, "2025-03-11", "2025-03-15")
}

func TestConcurrentOverlappingCreates(t *testing.T) {
	svc, _ := newTestService(t)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), CreateBookingInput{
				PropertyID:  "P1",
				RequesterID: requesterID,
				StartDate:   "2025-03-01",
				EndDate:     "2025-03-10",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, KindDateRangeUnavailable, KindOf(err))
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestAcceptBooking(t *testing.T) {
	svc, _ := newTestService(t)
	b := createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")

	accepted, err := svc.AcceptBooking(context.Background(), b.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, accepted.Status)

	// The accepted range keeps blocking the calendar.
	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID:  "P1",
		RequesterID: otherUserID,
		StartDate:   "2025-03-05",
		EndDate:     "2025-03-08",
	})
	require.Error(t, err)
	assert.Equal(t, KindDateRangeUnavailable, KindOf(err))
}

func TestAcceptBookingAuthorization(t *testing.T) {
	svc, _ := newTestService(t)
	b := createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")

	_, err := svc.AcceptBooking(context.Background(), b.ID, otherUserID)
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	// The requester cannot accept their own request either.
	_, err = svc.AcceptBooking(context.Background(), b.ID, requesterID)
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestAcceptBookingNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AcceptBooking(context.Background(), "missing", ownerID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestAcceptAlreadyAcceptedIsInvalidTransition(t *testing.T) {
	svc, _ := newTestService(t)
	b := createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")

	_, err := svc.AcceptBooking(context.Background(), b.ID, ownerID)
	require.NoError(t, err)

	_, err = svc.AcceptBooking(context.Background(), b.ID, ownerID)
	require.Error(t, err)
	assert.Equal(t, KindInvalidTransition, KindOf(err))

	_, err = svc.RejectBooking(context.Background(), b.ID, ownerID)
	require.Error(t, err)
	assert.Equal(t, KindInvalidTransition, KindOf(err))
}

func TestRejectFreesDateRange(t *testing.T) {
	svc, _ := newTestService(t)

	// One-day stay is billed one full month.
	b := createStay(t, svc, requesterID, "2025-04-01", "2025-04-01")
	assert.InDelta(t, 30000.0, b.TotalPrice, 1e-9)

	rejected, err := svc.RejectBooking(context.Background(), b.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, rejected.Status)

	// The identical range is available again.
	again := createStay(t, svc, otherUserID, "2025-04-01", "2025-04-01")
	assert.Equal(t, models.BookingStatusPending, again.Status)
}

func TestConcurrentAcceptRejectSingleWinner(t *testing.T) {
	svc, _ := newTestService(t)
	b := createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")

	var wg sync.WaitGroup
	var acceptErr, rejectErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, acceptErr = svc.AcceptBooking(context.Background(), b.ID, ownerID)
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = svc.RejectBooking(context.Background(), b.ID, ownerID)
	}()
	wg.Wait()

	// Exactly one of the two sessions wins the race.
	if acceptErr == nil {
		require.Error(t, rejectErr)
		assert.Equal(t, KindInvalidTransition, KindOf(rejectErr))
	} else {
		require.NoError(t, rejectErr)
		assert.Equal(t, KindInvalidTransition, KindOf(acceptErr))
	}
}

func TestListProjections(t *testing.T) {
	svc, _ := newTestService(t)

	b1 := createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")
	b2 := createStay(t, svc, otherUserID, "2025-04-01", "2025-04-05")

	mine, err := svc.ListForRequester(context.Background(), requesterID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b1.ID, mine[0].ID)

	owned, err := svc.ListForOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	ids := []string{owned[0].ID, owned[1].ID}
	assert.ElementsMatch(t, []string{b1.ID, b2.ID}, ids)

	none, err := svc.ListForRequester(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAcceptedScenarioBlocksSecondRequester(t *testing.T) {
	// P1 priced 30000/mo, owner U1. U2 books 2025-03-01..2025-03-10
	// (10 days, one month), U1 accepts, U3's overlapping attempt fails.
	svc, _ := newTestService(t)

	b := createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")
	assert.InDelta(t, 30000.0, b.TotalPrice, 1e-9)

	accepted, err := svc.AcceptBooking(context.Background(), b.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, accepted.Status)

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID:  "P1",
		RequesterID: otherUserID,
		StartDate:   "2025-03-05",
		EndDate:     "2025-03-08",
	})
	require.Error(t, err)
	assert.Equal(t, KindDateRangeUnavailable, KindOf(err))
}

func TestCompleteElapsed(t *testing.T) {
	svc, _ := newTestService(t)

	b := createStay(t, svc, requesterID, "2025-02-01", "2025-02-10")
	_, err := svc.AcceptBooking(context.Background(), b.ID, ownerID)
	require.NoError(t, err)

	// Nothing elapses while the stay is ongoing.
	completed, err := svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, completed)

	// Move the reference date past the stay.
	svc.Now = func() time.Time {
		return time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC)
	}
	completed, err = svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	stored, err := svc.Repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, stored.Status)

	// A completed booking no longer occupies the calendar, and the
	// sweep never touches PENDING bookings.
	pending := createStay(t, svc, otherUserID, "2025-02-12", "2025-02-14")
	svc.Now = func() time.Time {
		return time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	}
	completed, err = svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, completed)

	stillPending, err := svc.Repo.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, stillPending.Status)
}

func TestPriceSnapshotSurvivesRateChange(t *testing.T) {
	svc, properties := newTestService(t)

	b := createStay(t, svc, requesterID, "2025-03-01", "2025-03-10")
	require.InDelta(t, 30000.0, b.TotalPrice, 1e-9)

	// Raise the rate; the existing booking keeps its snapshot price.
	require.NoError(t, properties.Insert(context.Background(), &models.Property{
		ID:           "P1",
		OwnerID:      ownerID,
		Title:        "Warehouse on 5th",
		Address:      "5th Street 12",
		MonthlyPrice: 45000,
		CreatedAt:    time.Now(),
	}))

	stored, err := svc.Repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30000.0, stored.TotalPrice, 1e-9)

	// New bookings see the new rate.
	b2 := createStay(t, svc, otherUserID, "2025-04-01", "2025-04-05")
	assert.InDelta(t, 45000.0, b2.TotalPrice, 1e-9)
}
