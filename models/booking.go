package models

import "time"

// Booking lifecycle statuses. Only PENDING bookings may transition;
// COMPLETED is reached by the completion sweep, never through the API.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusAccepted  = "ACCEPTED"
	BookingStatusRejected  = "REJECTED"
	BookingStatusCompleted = "COMPLETED"
)

// Booking represents a requester's claim on a property for a date range.
// OwnerID and TotalPrice are snapshots taken at creation time: later
// property mutations (rate change, ownership transfer) do not affect
// existing bookings.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	PropertyID  string    `bson:"property_id" json:"property_id"`
	RequesterID string    `bson:"requester_id" json:"requester_id"`
	OwnerID     string    `bson:"owner_id" json:"owner_id"`
	StartDate   string    `bson:"start_date" json:"start_date"` // "YYYY-MM-DD"
	EndDate     string    `bson:"end_date" json:"end_date"`     // "YYYY-MM-DD"
	Message     string    `bson:"message,omitempty" json:"message,omitempty"`
	Status      string    `bson:"status" json:"status"`
	TotalPrice  float64   `bson:"total_price" json:"total_price"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// IsTerminal reports whether the booking has left the PENDING state.
func (b *Booking) IsTerminal() bool {
	return b.Status != BookingStatusPending
}

// BookingResponse is the wire form of a booking, with the derived
// duration fields clients render (days, billed months).
type BookingResponse struct {
	Booking
	Days   int `json:"days"`
	Months int `json:"months"`
}
