package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// Error codes surfaced to callers.
const (
	CodeNotFound         = "not_found"
	CodeValidation       = "validation"
	CodeSlotConflict     = "slot_conflict"
	CodePolicyViolation  = "policy_violation"
	CodeAlreadyCheckedIn = "already_checked_in"
	CodeWindowClosed     = "checkin_window_closed"
	CodeInvalidState     = "invalid_state"
)

// Error is a coded engine error with enough structure for a caller to render
// a user-facing message.
type Error struct {
	Code              string     `json:"code"`
	Message           string     `json:"message"`
	HoursUntilBooking *float64   `json:"hoursUntilBooking,omitempty"`
	CheckedInAt       *time.Time `json:"checkedInAt,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsError unwraps err into an engine Error, if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func errNotFound(what string) *Error {
	return &Error{Code: CodeNotFound, Message: what + " not found"}
}

func errValidation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func errConflict(msg string) *Error {
	return &Error{Code: CodeSlotConflict, Message: msg}
}

func errPolicy(d Decision) *Error {
	hours := d.HoursUntilBooking
	return &Error{Code: CodePolicyViolation, Message: d.Reason, HoursUntilBooking: &hours}
}

func errAlreadyCheckedIn(at time.Time) *Error {
	return &Error{Code: CodeAlreadyCheckedIn, Message: "booking is already checked in", CheckedInAt: &at}
}

func errWindowClosed() *Error {
	return &Error{Code: CodeWindowClosed, Message: "check-in window closed"}
}

func errInvalidState(msg string) *Error {
	return &Error{Code: CodeInvalidState, Message: msg}
}
