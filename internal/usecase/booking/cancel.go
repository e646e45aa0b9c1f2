package booking

import (
	"context"
	"time"

	"github.com/wiissal/take-a-chef/internal/audit"
	domain "github.com/wiissal/take-a-chef/internal/domain/booking"
	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/metrics"
	"github.com/wiissal/take-a-chef/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute cancels on behalf of either party: booking, then ownership, then
// terminal state.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	id identity.Identity,
	bookingID uint,
) (*models.Booking, error) {

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		b, err := uc.repo.GetBooking(ctx, bookingID)
		if err != nil {
			if isNotFound(err) {
				return nil, errBookingNotFound
			}
			return nil, err
		}

		party, err := resolveParty(ctx, uc.repo, id)
		if err != nil {
			return nil, err
		}
		if !domain.IsOwner(party, b) {
			return nil, httperr.ErrForbidden("not_booking_party", "not authorized to cancel this booking")
		}

		from := domain.Status(b.Status)
		if err := domain.Cancel(b, uc.now()); err != nil {
			return nil, err
		}

		ok, err := uc.repo.UpdateBookingStatus(ctx, b, from)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		metrics.IncBookingTransition(b.Status)
		uc.audit.Dispatch(audit.Event{
			ActorUserID: audit.Uint(id.UserID),
			Action:      audit.ActionBookingCancelled,
			Entity:      "booking",
			EntityID:    audit.Uint(b.ID),
			Metadata:    map[string]any{"from": string(from), "by": id.Role.String()},
		})

		return uc.repo.GetBookingDetails(ctx, b.ID)
	}

	return nil, errConcurrentUpdate
}
