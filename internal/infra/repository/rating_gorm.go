package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wiissal/take-a-chef/internal/domain/rating"
	"github.com/wiissal/take-a-chef/internal/models"
)

// RatingGormStore writes the derived rating fields. Construct it over a
// transaction handle; LockChef holds until that transaction ends.
type RatingGormStore struct {
	db *gorm.DB
}

func NewRatingGormStore(tx *gorm.DB) *RatingGormStore {
	return &RatingGormStore{db: tx}
}

func (s *RatingGormStore) LockChef(ctx context.Context, chefID uint) error {
	var chef models.ChefProfile
	return s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&chef, chefID).Error
}

func (s *RatingGormStore) ListChefRatings(ctx context.Context, chefID uint) ([]int, error) {
	var ratings []int
	if err := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("chef_id = ?", chefID).
		Order("id").
		Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (s *RatingGormStore) ApplyChefRating(ctx context.Context, chefID uint, sum rating.Summary) error {
	res := s.db.WithContext(ctx).
		Model(&models.ChefProfile{}).
		Where("id = ?", chefID).
		Updates(map[string]any{
			"rating":        sum.Rating,
			"total_reviews": sum.TotalReviews,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ rating.Store = (*RatingGormStore)(nil)

// --------------------------------------------------
// Reconciliation
// --------------------------------------------------

// RatingGormRepository opens rating transactions and finds chefs whose
// stored summary disagrees with their reviews.
type RatingGormRepository struct {
	db         *gorm.DB
	maxRetries int
}

func NewRatingGormRepository(db *gorm.DB, maxRetries int) *RatingGormRepository {
	return &RatingGormRepository{db: db, maxRetries: maxRetries}
}

func (r *RatingGormRepository) WithinTx(ctx context.Context, fn func(store rating.Store) error) error {
	return runInTx(ctx, r.db, r.maxRetries, func(tx *gorm.DB) error {
		return fn(NewRatingGormStore(tx))
	})
}

// ListDriftedChefIDs returns chefs with at least one review whose count or
// mean does not match the stored fields. A stored rating is within 0.005 of
// the mean when it is correctly rounded.
func (r *RatingGormRepository) ListDriftedChefIDs(ctx context.Context, limit int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("chef_profiles AS c").
		Select("c.id").
		Joins(`JOIN (
			SELECT chef_id, COUNT(*) AS n, AVG(rating) AS mean
			FROM reviews GROUP BY chef_id
		) AS r ON r.chef_id = c.id`).
		Where("c.total_reviews <> r.n OR ABS(c.rating - r.mean) > 0.006").
		Order("c.id").
		Limit(limit).
		Pluck("c.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
