// Package rating derives a chef's public rating from the review ledger.
package rating

import "context"

// Summary is the pair of rating fields stored on a chef profile.
type Summary struct {
	Rating       float64
	TotalReviews int
}

// Compute returns the mean of ratings rounded to two decimals and the count.
// The second result is false for an empty set, in which case nothing should
// be written.
func Compute(ratings []int) (Summary, bool) {
	if len(ratings) == 0 {
		return Summary{}, false
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return Summary{
		Rating:       meanCents(sum, len(ratings)),
		TotalReviews: len(ratings),
	}, true
}

// meanCents rounds sum/n half up to two decimals in integer arithmetic, so
// exact half-cent means (1.025, 4.225) are not lost to float representation.
// Ratings are positive, so half up is half away from zero.
func meanCents(sum, n int) float64 {
	return float64((200*sum+n)/(2*n)) / 100
}

// Store is the only write path to ChefProfile.Rating and TotalReviews.
// Implementations are bound to a single transaction.
type Store interface {
	// LockChef takes a row lock on the chef profile for the rest of the
	// transaction.
	LockChef(ctx context.Context, chefID uint) error
	ListChefRatings(ctx context.Context, chefID uint) ([]int, error)
	// ApplyChefRating writes both fields in one statement.
	ApplyChefRating(ctx context.Context, chefID uint, s Summary) error
}
