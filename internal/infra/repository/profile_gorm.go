package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/models"
)

// ProfileGormRepository is the read-only chef and customer directory.
type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

// --------------------------------------------------
// Chef
// --------------------------------------------------

func (r *ProfileGormRepository) GetChefByID(
	ctx context.Context,
	id uint,
) (*models.ChefProfile, error) {

	var chef models.ChefProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&chef, id).Error; err != nil {
		return nil, err
	}
	return &chef, nil
}

func (r *ProfileGormRepository) GetChefByUserID(
	ctx context.Context,
	userID uint,
) (*models.ChefProfile, error) {

	var chef models.ChefProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&chef).Error; err != nil {
		return nil, err
	}
	return &chef, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *ProfileGormRepository) GetCustomerByUserID(
	ctx context.Context,
	userID uint,
) (*models.CustomerProfile, error) {

	var customer models.CustomerProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
