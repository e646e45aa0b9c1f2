package booking

import (
	"context"

	domain "github.com/wiissal/take-a-chef/internal/domain/booking"
	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

type ListBookingsInput struct {
	Identity identity.Identity
	Status   string
	Page     int
	Limit    int
}

type ListBookingsResult struct {
	Items []models.Booking
	Total int64
	Page  int
	Limit int
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute lists only bookings the caller is a party to.
func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) (*ListBookingsResult, error) {

	var status domain.Status
	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	party, err := resolveParty(ctx, uc.repo, in.Identity)
	if err != nil {
		return nil, err
	}
	if party.ProfileID == 0 {
		if in.Identity.IsChef() {
			return nil, httperr.ErrNotFound("chef_not_found", "chef profile not found")
		}
		return nil, httperr.ErrNotFound("customer_not_found", "customer profile not found")
	}

	page, limit := normalizePage(in.Page, in.Limit)
	filter := domain.ListFilter{Status: status, Page: page, Limit: limit}
	if in.Identity.IsChef() {
		filter.ChefID = party.ProfileID
	} else {
		filter.CustomerID = party.ProfileID
	}

	items, total, err := uc.repo.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListBookingsResult{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}
