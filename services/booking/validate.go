package booking

import "time"

// DateLayout is the calendar-date wire format. No time of day, no
// timezone; comparisons are date-only.
const DateLayout = "2006-01-02"

const (
	// MaxStayDays caps the inclusive duration of a stay.
	MaxStayDays = 30
	// MaxAdvanceDays caps how far ahead of the reference date a stay
	// may start.
	MaxAdvanceDays = 365
)

// StayRange is a validated, normalized booking range.
type StayRange struct {
	Start time.Time
	End   time.Time
	// Days is the inclusive day count (start and end both counted).
	Days int
}

// StartDate returns the start in wire form.
func (r StayRange) StartDate() string { return r.Start.Format(DateLayout) }

// EndDate returns the end in wire form.
func (r StayRange) EndDate() string { return r.End.Format(DateLayout) }

// ValidateStayRange checks a candidate range against the booking rules,
// applied in order with the first failure winning. The reference date
// is injected so callers control "today". Pure, no side effects.
func ValidateStayRange(startDate, endDate string, today time.Time) (*StayRange, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, newError(KindInvalidDate, "start date must be a valid YYYY-MM-DD date")
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return nil, newError(KindInvalidDate, "end date must be a valid YYYY-MM-DD date")
	}

	ref := truncateToDay(today)
	if start.Before(ref) {
		return nil, newError(KindStartInPast, "start date cannot be in the past")
	}
	if end.Before(start) {
		return nil, newError(KindEndBeforeStart, "end date cannot be before start date")
	}

	days := inclusiveDays(start, end)
	if days < 1 || days > MaxStayDays {
		return nil, newError(KindDurationOutOfRange, "stay must be between 1 and 30 days")
	}

	if start.After(ref.AddDate(0, 0, MaxAdvanceDays)) {
		return nil, newError(KindTooFarInAdvance, "start date cannot be more than a year ahead")
	}

	return &StayRange{Start: start, End: end, Days: days}, nil
}

// inclusiveDays counts calendar days with both endpoints included.
func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
