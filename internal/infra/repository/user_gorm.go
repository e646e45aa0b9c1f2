package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// CreateWithProfile inserts the user and exactly one of chef or customer in
// a single transaction. The profile's UserID is filled in.
func (r *UserGormRepository) CreateWithProfile(
	ctx context.Context,
	user *models.User,
	chef *models.ChefProfile,
	customer *models.CustomerProfile,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		switch {
		case chef != nil:
			chef.UserID = user.ID
			return tx.Omit("User").Create(chef).Error
		case customer != nil:
			customer.UserID = user.ID
			return tx.Omit("User").Create(customer).Error
		}
		return nil
	})
	if isUniqueViolation(err) {
		return httperr.ErrConflict("email_taken", "a user with this email already exists")
	}
	return err
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
