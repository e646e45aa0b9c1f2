package review

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/audit"
	bookingdomain "github.com/wiissal/take-a-chef/internal/domain/booking"
	"github.com/wiissal/take-a-chef/internal/domain/identity"
	domain "github.com/wiissal/take-a-chef/internal/domain/review"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/metrics"
	"github.com/wiissal/take-a-chef/internal/models"
	ratinguc "github.com/wiissal/take-a-chef/internal/usecase/rating"
)

// ======================================================
// INPUT
// ======================================================

type CreateReviewInput struct {
	Identity  identity.Identity
	BookingID uint
	Rating    int
	Comment   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReview struct {
	repo       domain.Repository
	aggregator *ratinguc.Aggregator
	cache      ratinguc.ChefInvalidator
	audit      *audit.Dispatcher
	log        zerolog.Logger
}

func NewCreateReview(
	repo domain.Repository,
	aggregator *ratinguc.Aggregator,
	cache ratinguc.ChefInvalidator,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *CreateReview {
	return &CreateReview{
		repo:       repo,
		aggregator: aggregator,
		cache:      cache,
		audit:      audit,
		log:        log.With().Str("component", "review").Logger(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute checks eligibility in a fixed order and reports the first
// failure. The review insert and the chef rating recompute commit together.
func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*models.Review, error) {

	// --------------------------------------------------
	// 1. Role
	// --------------------------------------------------
	if !in.Identity.IsCustomer() {
		return nil, httperr.ErrForbidden("customers_only", "only customers can create reviews")
	}

	// --------------------------------------------------
	// 2. Customer profile
	// --------------------------------------------------
	customer, err := uc.repo.GetCustomerByUserID(ctx, in.Identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("customer_not_found", "customer profile not found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Booking
	// --------------------------------------------------
	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found", "booking not found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Ownership
	// --------------------------------------------------
	if b.CustomerID != customer.ID {
		return nil, httperr.ErrForbidden("not_booking_customer", "you can only review your own bookings")
	}

	// --------------------------------------------------
	// 5. Completed
	// --------------------------------------------------
	if bookingdomain.Status(b.Status) != bookingdomain.StatusCompleted {
		return nil, httperr.ErrInvalidState("booking_not_completed", "you can only review completed bookings")
	}

	// --------------------------------------------------
	// 6. One review per booking
	// --------------------------------------------------
	exists, err := uc.repo.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrConflict("review_exists", "you have already reviewed this booking")
	}

	// --------------------------------------------------
	// 7. Rating / comment
	// --------------------------------------------------
	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(in.Comment)
	if err := domain.ValidateComment(comment); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Insert + recompute, one transaction
	// --------------------------------------------------
	var rv *models.Review
	err = uc.repo.InTransaction(ctx, func(tx domain.TxRepository) error {
		store := tx.Ratings()

		// lock before insert: the review's FK check share-locks the chef row
		if err := store.LockChef(ctx, b.ChefID); err != nil {
			return err
		}

		rv = &models.Review{
			BookingID: b.ID,
			ChefID:    b.ChefID,
			Rating:    in.Rating,
			Comment:   comment,
		}
		if err := tx.CreateReview(ctx, rv); err != nil {
			return err
		}

		_, _, err := uc.aggregator.RecomputeIn(ctx, store, b.ChefID, ratinguc.TriggerReview)
		return err
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9. After commit
	// --------------------------------------------------
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, b.ChefID); err != nil {
			uc.log.Warn().Err(err).Uint("chef_id", b.ChefID).Msg("chef cache invalidation failed")
		}
	}

	metrics.IncReviewCreated()
	uc.audit.Dispatch(audit.Event{
		ActorUserID: audit.Uint(in.Identity.UserID),
		Action:      audit.ActionReviewCreated,
		Entity:      "review",
		EntityID:    audit.Uint(rv.ID),
		Metadata:    map[string]any{"booking_id": b.ID, "chef_id": b.ChefID, "rating": in.Rating},
	})

	return uc.repo.GetReviewDetails(ctx, rv.ID)
}
