package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/domain/rating"
	domain "github.com/wiissal/take-a-chef/internal/domain/review"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

type ReviewGormRepository struct {
	*ProfileGormRepository
	db         *gorm.DB
	maxRetries int
}

func NewReviewGormRepository(db *gorm.DB, maxRetries int) *ReviewGormRepository {
	return &ReviewGormRepository{
		ProfileGormRepository: NewProfileGormRepository(db),
		db:                    db,
		maxRetries:            maxRetries,
	}
}

func (r *ReviewGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ReviewGormRepository) ExistsForBooking(
	ctx context.Context,
	bookingID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) GetReviewDetails(
	ctx context.Context,
	id uint,
) (*models.Review, error) {

	var rv models.Review
	if err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Customer.User").
		Preload("Chef.User").
		First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) ListByChef(
	ctx context.Context,
	chefID uint,
	page int,
	limit int,
) ([]models.Review, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("chef_id = ?", chefID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.Review, 0, limit)
	if err := q.
		Preload("Booking.Customer.User").
		Order("created_at DESC").
		Order("id DESC").
		Offset(pageOffset(page, limit)).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ReviewGormRepository) InTransaction(
	ctx context.Context,
	fn func(tx domain.TxRepository) error,
) error {
	return runInTx(ctx, r.db, r.maxRetries, func(tx *gorm.DB) error {
		return fn(&reviewTx{db: tx})
	})
}

// --------------------------------------------------
// Transaction-bound
// --------------------------------------------------

type reviewTx struct {
	db *gorm.DB
}

func (t *reviewTx) CreateReview(ctx context.Context, rv *models.Review) error {
	err := t.db.WithContext(ctx).Omit("Booking", "Chef").Create(rv).Error
	if isUniqueViolation(err) {
		return httperr.ErrConflict("review_exists", "a review already exists for this booking")
	}
	return err
}

func (t *reviewTx) Ratings() rating.Store {
	return NewRatingGormStore(t.db)
}

var (
	_ domain.Repository   = (*ReviewGormRepository)(nil)
	_ domain.TxRepository = (*reviewTx)(nil)
)
