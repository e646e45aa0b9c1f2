package rating

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	domain "github.com/wiissal/take-a-chef/internal/domain/rating"
	"github.com/wiissal/take-a-chef/internal/metrics"
)

const (
	TriggerReview    = "review"
	TriggerReconcile = "reconcile"

	outcomeUpdated = "updated"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Transactor opens a transaction bound rating store.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(store domain.Store) error) error
}

// ChefInvalidator drops cached chef summaries after a rating write commits.
type ChefInvalidator interface {
	Invalidate(ctx context.Context, chefID uint) error
}

// Aggregator keeps ChefProfile.Rating and TotalReviews equal to the review
// ledger. It is the only caller of Store.ApplyChefRating.
type Aggregator struct {
	tx  Transactor
	log zerolog.Logger
}

func NewAggregator(tx Transactor, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		tx:  tx,
		log: log.With().Str("component", "rating").Logger(),
	}
}

// RecomputeIn recomputes chefID inside the caller's transaction. The chef
// row is locked first so concurrent recomputes for one chef serialize.
// It reports false when the chef has no reviews and nothing was written.
func (a *Aggregator) RecomputeIn(
	ctx context.Context,
	store domain.Store,
	chefID uint,
	trigger string,
) (domain.Summary, bool, error) {

	sum, ok, err := a.recompute(ctx, store, chefID)
	switch {
	case err != nil:
		metrics.IncRatingRecompute(trigger, outcomeError)
	case !ok:
		metrics.IncRatingRecompute(trigger, outcomeEmpty)
	default:
		metrics.IncRatingRecompute(trigger, outcomeUpdated)
	}
	return sum, ok, err
}

func (a *Aggregator) recompute(ctx context.Context, store domain.Store, chefID uint) (domain.Summary, bool, error) {
	if err := store.LockChef(ctx, chefID); err != nil {
		return domain.Summary{}, false, fmt.Errorf("lock chef %d: %w", chefID, err)
	}

	ratings, err := store.ListChefRatings(ctx, chefID)
	if err != nil {
		return domain.Summary{}, false, fmt.Errorf("list ratings for chef %d: %w", chefID, err)
	}

	sum, ok := domain.Compute(ratings)
	if !ok {
		return domain.Summary{}, false, nil
	}

	if err := store.ApplyChefRating(ctx, chefID, sum); err != nil {
		return domain.Summary{}, false, fmt.Errorf("apply rating for chef %d: %w", chefID, err)
	}
	return sum, true, nil
}

// Recompute runs RecomputeIn in its own transaction.
func (a *Aggregator) Recompute(ctx context.Context, chefID uint, trigger string) (domain.Summary, bool, error) {
	var (
		sum domain.Summary
		ok  bool
	)
	err := a.tx.WithinTx(ctx, func(store domain.Store) error {
		var err error
		sum, ok, err = a.RecomputeIn(ctx, store, chefID, trigger)
		return err
	})
	if err != nil {
		return domain.Summary{}, false, err
	}

	a.log.Debug().
		Uint("chef_id", chefID).
		Float64("rating", sum.Rating).
		Int("total_reviews", sum.TotalReviews).
		Str("trigger", trigger).
		Msg("chef rating recomputed")
	return sum, ok, nil
}
