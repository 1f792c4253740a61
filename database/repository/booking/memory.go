package bookingRepo

import (
	"context"
	"sort"
	"sync"

	"spacebook/models"
)

// MemoryBookingRepo is an in-memory BookingRepository used in tests and
// local runs without MongoDB. All methods are safe for concurrent use.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

// NewMemoryBookingRepo returns an empty in-memory repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (repo *MemoryBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.bookings[booking.ID] = *booking
	return nil
}

func (repo *MemoryBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	booking, ok := repo.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (repo *MemoryBookingRepo) FindOverlapping(ctx context.Context, propertyID, start, end string, statuses []string) ([]models.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	statusSet := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		statusSet[s] = struct{}{}
	}

	var out []models.Booking
	for _, b := range repo.bookings {
		if b.PropertyID != propertyID {
			continue
		}
		if _, ok := statusSet[b.Status]; !ok {
			continue
		}
		// Inclusive-inclusive intersection on "YYYY-MM-DD" strings.
		if b.StartDate <= end && b.EndDate >= start {
			out = append(out, b)
		}
	}
	return out, nil
}

func (repo *MemoryBookingRepo) ListByRequester(ctx context.Context, userID string) ([]models.Booking, error) {
	return repo.filter(func(b models.Booking) bool { return b.RequesterID == userID }), nil
}

func (repo *MemoryBookingRepo) ListByOwner(ctx context.Context, userID string) ([]models.Booking, error) {
	return repo.filter(func(b models.Booking) bool { return b.OwnerID == userID }), nil
}

func (repo *MemoryBookingRepo) ListEndedBefore(ctx context.Context, date, status string) ([]models.Booking, error) {
	return repo.filter(func(b models.Booking) bool {
		return b.Status == status && b.EndDate < date
	}), nil
}

func (repo *MemoryBookingRepo) UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string) (*models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	booking, ok := repo.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if booking.Status != expectedStatus {
		return nil, ErrVersionConflict
	}
	booking.Status = newStatus
	repo.bookings[id] = booking
	return &booking, nil
}

func (repo *MemoryBookingRepo) filter(keep func(models.Booking) bool) []models.Booking {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var out []models.Booking
	for _, b := range repo.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
