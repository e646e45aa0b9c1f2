package booking

import (
	"time"

	"github.com/wiissal/take-a-chef/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// Assign applies a chef status change. It reports whether the booking was
// modified; re-assigning the current value is a no-op.
func Assign(b *models.Booking, next Status, now time.Time) (bool, error) {
	current := Status(b.Status)
	if err := CanAssign(current, next); err != nil {
		return false, err
	}
	if current == next {
		return false, nil
	}

	b.Status = string(next)
	switch next {
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
	return true, nil
}
