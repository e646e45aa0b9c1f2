package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/wiissal/take-a-chef/internal/domain/booking"
	"github.com/wiissal/take-a-chef/internal/models"
)

type BookingGormRepository struct {
	*ProfileGormRepository
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{
		ProfileGormRepository: NewProfileGormRepository(db),
		db:                    db,
	}
}

func withParties(db *gorm.DB) *gorm.DB {
	return db.Preload("Chef.User").Preload("Customer.User")
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit("Chef", "Customer").Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingDetails(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := withParties(r.db.WithContext(ctx)).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	switch {
	case f.CustomerID != 0:
		q = q.Where("customer_id = ?", f.CustomerID)
	case f.ChefID != 0:
		q = q.Where("chef_id = ?", f.ChefID)
	default:
		// unscoped listings are never allowed
		return []models.Booking{}, 0, nil
	}

	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.Booking, 0, f.Limit)
	if err := withParties(q).
		Order("event_at DESC").
		Order("id DESC").
		Offset(pageOffset(f.Page, f.Limit)).
		Limit(f.Limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	b *models.Booking,
	from domain.Status,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(from)).
		Updates(map[string]any{
			"status":       b.Status,
			"cancelled_at": b.CancelledAt,
			"completed_at": b.CompletedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

var _ domain.Repository = (*BookingGormRepository)(nil)
