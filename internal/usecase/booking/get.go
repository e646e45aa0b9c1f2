package booking

import (
	"context"

	domain "github.com/wiissal/take-a-chef/internal/domain/booking"
	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	id identity.Identity,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingDetails(ctx, bookingID)
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
		return nil, httperr.ErrForbidden("not_booking_party", "not authorized to view this booking")
	}

	return b, nil
}

var errBookingNotFound = httperr.ErrNotFound("booking_not_found", "booking not found")
