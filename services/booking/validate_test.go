package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refToday = time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC)

func TestValidateStayRangeAccepts(t *testing.T) {
	stay, err := ValidateStayRange("2025-03-01", "2025-03-10", refToday)
	require.NoError(t, err)
	assert.Equal(t, 10, stay.Days)
	assert.Equal(t, "2025-03-01", stay.StartDate())
	assert.Equal(t, "2025-03-10", stay.EndDate())
}

func TestValidateStayRangeInvalidDate(t *testing.T) {
	cases := [][2]string{
		{"not-a-date", "2025-03-10"},
		{"2025-03-01", "10/03/2025"},
		{"", "2025-03-10"},
		{"2025-13-40", "2025-03-10"},
	}
	for _, c := range cases {
		_, err := ValidateStayRange(c[0], c[1], refToday)
		require.Error(t, err)
		assert.Equal(t, KindInvalidDate, KindOf(err))
	}
}

func TestValidateStayRangeStartInPast(t *testing.T) {
	_, err := ValidateStayRange("2025-01-31", "2025-02-05", refToday)
	require.Error(t, err)
	assert.Equal(t, KindStartInPast, KindOf(err))
}

func TestValidateStayRangeSameDayAsTodayAllowed(t *testing.T) {
	// "today" carries a time of day; the comparison must be date-only.
	stay, err := ValidateStayRange("2025-02-01", "2025-02-01", refToday)
	require.NoError(t, err)
	assert.Equal(t, 1, stay.Days)
}

func TestValidateStayRangeEndBeforeStart(t *testing.T) {
	_, err := ValidateStayRange("2025-03-10", "2025-03-01", refToday)
	require.Error(t, err)
	assert.Equal(t, KindEndBeforeStart, KindOf(err))
}

func TestValidateStayRangeOrderOfChecks(t *testing.T) {
	// A past start loses to StartInPast even when the ordering rule is
	// also violated: first failure wins.
	_, err := ValidateStayRange("2025-01-10", "2025-01-01", refToday)
	require.Error(t, err)
	assert.Equal(t, KindStartInPast, KindOf(err))
}

func TestValidateStayRangeDurationBounds(t *testing.T) {
	// 1 day and exactly 30 days succeed, 31 days fails.
	one, err := ValidateStayRange("2025-03-01", "2025-03-01", refToday)
	require.NoError(t, err)
	assert.Equal(t, 1, one.Days)

	thirty, err := ValidateStayRange("2025-03-01", "2025-03-30", refToday)
	require.NoError(t, err)
	assert.Equal(t, 30, thirty.Days)

	_, err = ValidateStayRange("2025-03-01", "2025-03-31", refToday)
	require.Error(t, err)
	assert.Equal(t, KindDurationOutOfRange, KindOf(err))
}

func TestValidateStayRangeAdvanceWindow(t *testing.T) {
	// Exactly 365 days ahead is allowed, one more day is not.
	limit := refToday.AddDate(0, 0, MaxAdvanceDays)
	_, err := ValidateStayRange(limit.Format(DateLayout), limit.AddDate(0, 0, 4).Format(DateLayout), refToday)
	require.NoError(t, err)

	beyond := limit.AddDate(0, 0, 1)
	_, err = ValidateStayRange(beyond.Format(DateLayout), beyond.AddDate(0, 0, 4).Format(DateLayout), refToday)
	require.Error(t, err)
	assert.Equal(t, KindTooFarInAdvance, KindOf(err))
}
