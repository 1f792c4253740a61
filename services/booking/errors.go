package booking

import "errors"

// Kind identifies a booking failure class. Handlers map kinds to HTTP
// statuses; the engine never formats presentation text.
type Kind string

const (
	KindInvalidDate           Kind = "INVALID_DATE"
	KindStartInPast           Kind = "START_IN_PAST"
	KindEndBeforeStart        Kind = "END_BEFORE_START"
	KindDurationOutOfRange    Kind = "DURATION_OUT_OF_RANGE"
	KindTooFarInAdvance       Kind = "TOO_FAR_IN_ADVANCE"
	KindSelfBookingForbidden  Kind = "SELF_BOOKING_FORBIDDEN"
	KindDateRangeUnavailable  Kind = "DATE_RANGE_UNAVAILABLE"
	KindNotFound              Kind = "NOT_FOUND"
	KindUnauthorized          Kind = "UNAUTHORIZED"
	KindInvalidTransition     Kind = "INVALID_TRANSITION"
	KindRepositoryUnavailable Kind = "REPOSITORY_UNAVAILABLE"
)

// Error carries a failure kind alongside its message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the failure kind from an error, or "" when the error
// did not originate in this package.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
