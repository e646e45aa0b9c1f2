package rating

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wiissal/take-a-chef/internal/audit"
)

const reconcileBatch = 100

// DriftFinder lists chefs whose stored rating disagrees with their reviews.
type DriftFinder interface {
	ListDriftedChefIDs(ctx context.Context, limit int) ([]uint, error)
}

// Reconciler repairs chef ratings left stale by a review whose recompute
// never committed.
type Reconciler struct {
	finder     DriftFinder
	aggregator *Aggregator
	cache      ChefInvalidator
	audit      *audit.Dispatcher
	log        zerolog.Logger
	interval   time.Duration
}

func NewReconciler(
	finder DriftFinder,
	aggregator *Aggregator,
	cache ChefInvalidator,
	audit *audit.Dispatcher,
	log zerolog.Logger,
	interval time.Duration,
) *Reconciler {
	return &Reconciler{
		finder:     finder,
		aggregator: aggregator,
		cache:      cache,
		audit:      audit,
		log:        log.With().Str("component", "rating_reconciler").Logger(),
		interval:   interval,
	}
}

// RunOnce repairs one batch and returns how many chefs were rewritten.
func (r *Reconciler) RunOnce(ctx context.Context) (int, error) {
	ids, err := r.finder.ListDriftedChefIDs(ctx, reconcileBatch)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return repaired, ctx.Err()
		}

		sum, ok, err := r.aggregator.Recompute(ctx, id, TriggerReconcile)
		if err != nil {
			r.log.Error().Err(err).Uint("chef_id", id).Msg("rating repair failed")
			continue
		}
		if !ok {
			continue
		}
		repaired++

		if r.cache != nil {
			if err := r.cache.Invalidate(ctx, id); err != nil {
				r.log.Warn().Err(err).Uint("chef_id", id).Msg("chef cache invalidation failed")
			}
		}

		r.audit.Dispatch(audit.Event{
			Action:   audit.ActionChefRatingRepaired,
			Entity:   "chef",
			EntityID: audit.Uint(id),
			Metadata: map[string]any{
				"rating":        sum.Rating,
				"total_reviews": sum.TotalReviews,
			},
		})
	}

	if repaired > 0 {
		r.log.Info().Int("repaired", repaired).Msg("chef ratings reconciled")
	}
	return repaired, nil
}

// Run calls RunOnce every interval until ctx is done. A non-positive
// interval disables the loop.
func (r *Reconciler) Run(ctx context.Context) {
	if r.interval <= 0 {
		r.log.Info().Msg("rating reconciler disabled")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.log.Error().Err(err).Msg("rating reconcile pass failed")
			}
		}
	}
}
