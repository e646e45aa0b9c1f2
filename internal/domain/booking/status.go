package booking

import "github.com/wiissal/take-a-chef/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.ErrInvalidArgument(
		"invalid_status",
		"status must be one of: pending, confirmed, completed, cancelled",
	)
}

func InitialStatus() Status {
	return StatusPending
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanCancel: only non-terminal bookings may be cancelled.
func CanCancel(current Status) error {
	switch current {
	case StatusCompleted:
		return httperr.ErrInvalidState("booking_completed", "cannot cancel a completed booking")
	case StatusCancelled:
		return httperr.ErrInvalidState("booking_already_cancelled", "booking is already cancelled")
	}
	return nil
}

// CanAssign validates a chef-driven status assignment. Any value may be
// assigned over a non-terminal booking, including moving backwards.
// A terminal booking accepts only its own value again.
func CanAssign(current, next Status) error {
	if current.IsTerminal() && current != next {
		return httperr.ErrInvalidState(
			"booking_terminal",
			"booking is "+string(current)+" and can no longer change status",
		)
	}
	return nil
}
