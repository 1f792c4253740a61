package booking

import (
	"time"

	"spacebook/models"
)

// ToResponse derives the display duration fields from a booking's
// stored range. Malformed dates (which validation makes impossible for
// engine-created bookings) yield zero durations.
func ToResponse(b models.Booking) models.BookingResponse {
	resp := models.BookingResponse{Booking: b}
	start, err1 := time.Parse(DateLayout, b.StartDate)
	end, err2 := time.Parse(DateLayout, b.EndDate)
	if err1 == nil && err2 == nil && !end.Before(start) {
		resp.Days = inclusiveDays(start, end)
		resp.Months = BilledMonths(resp.Days)
	}
	return resp
}

// ToResponses maps a booking list to wire form.
func ToResponses(bookings []models.Booking) []models.BookingResponse {
	out := make([]models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToResponse(b))
	}
	return out
}
