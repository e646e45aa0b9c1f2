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

type UpdateBookingStatusInput struct {
	Identity  identity.Identity
	BookingID uint
	Status    string
}

type UpdateBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	in UpdateBookingStatusInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Role
	// --------------------------------------------------
	if !domain.CanAssignStatus(in.Identity) {
		return nil, httperr.ErrForbidden("chefs_only", "only chefs can update booking status")
	}

	// --------------------------------------------------
	// 2. Status value
	// --------------------------------------------------
	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Chef profile
	// --------------------------------------------------
	chef, err := uc.repo.GetChefByUserID(ctx, in.Identity.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrNotFound("chef_not_found", "chef profile not found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Booking / ownership / transition
	// --------------------------------------------------
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		b, err := uc.repo.GetBooking(ctx, in.BookingID)
		if err != nil {
			if isNotFound(err) {
				return nil, errBookingNotFound
			}
			return nil, err
		}

		if b.ChefID != chef.ID {
			return nil, httperr.ErrForbidden("not_booking_chef", "not authorized to update this booking")
		}

		from := domain.Status(b.Status)
		changed, err := domain.Assign(b, next, uc.now())
		if err != nil {
			return nil, err
		}
		if !changed {
			return uc.repo.GetBookingDetails(ctx, b.ID)
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
			ActorUserID: audit.Uint(in.Identity.UserID),
			Action:      audit.ActionBookingStatusUpdated,
			Entity:      "booking",
			EntityID:    audit.Uint(b.ID),
			Metadata:    map[string]any{"from": string(from), "to": b.Status},
		})

		return uc.repo.GetBookingDetails(ctx, b.ID)
	}

	return nil, errConcurrentUpdate
}

var errConcurrentUpdate = httperr.ErrConflict("booking_modified", "booking was modified concurrently, retry")
