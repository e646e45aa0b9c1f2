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
	"github.com/wiissal/take-a-chef/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Identity identity.Identity

	ChefID     uint
	Date       string
	Time       string
	GuestCount int

	// TotalPrice is passed through as quoted; nil means 0.00.
	TotalPrice *float64
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		loc:   loc,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Role
	// --------------------------------------------------
	if !domain.CanCreate(in.Identity) {
		return nil, httperr.ErrForbidden("customers_only", "only customers can create bookings")
	}

	// --------------------------------------------------
	// 2. Customer profile
	// --------------------------------------------------
	customer, err := uc.repo.GetCustomerByUserID(ctx, in.Identity.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrNotFound("customer_not_found", "customer profile not found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Chef
	// --------------------------------------------------
	chef, err := uc.repo.GetChefByID(ctx, in.ChefID)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrNotFound("chef_not_found", "chef not found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Date / time / guests
	// --------------------------------------------------
	at, err := timezone.ParseDateTime(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrInvalidArgument("invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
	}
	if !at.After(uc.now()) {
		return nil, httperr.ErrInvalidArgument("booking_in_past", "booking date must be in the future")
	}

	guests := in.GuestCount
	if guests == 0 {
		guests = DefaultGuestCount
	}
	if guests < 1 || guests > MaxGuestCount {
		return nil, httperr.ErrInvalidArgument("invalid_guest_count", "number of guests must be between 1 and 50")
	}

	price := 0.0
	if in.TotalPrice != nil {
		price = *in.TotalPrice
	}
	if price < 0 {
		return nil, httperr.ErrInvalidArgument("invalid_total_price", "total price cannot be negative")
	}

	// --------------------------------------------------
	// 5. Insert
	// --------------------------------------------------
	b := &models.Booking{
		CustomerID: customer.ID,
		ChefID:     chef.ID,
		EventAt:    at.UTC(),
		Date:       at.Format(timezone.DateLayout),
		Time:       at.Format(timezone.TimeLayout),
		GuestCount: guests,
		Status:     string(domain.InitialStatus()),
		TotalPrice: price,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingTransition(b.Status)
	uc.audit.Dispatch(audit.Event{
		ActorUserID: audit.Uint(in.Identity.UserID),
		Action:      audit.ActionBookingCreated,
		Entity:      "booking",
		EntityID:    audit.Uint(b.ID),
		Metadata:    map[string]any{"chef_id": chef.ID, "guests": guests},
	})

	return uc.repo.GetBookingDetails(ctx, b.ID)
}
