package account

import (
	"context"

	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/models"
)

type Repository interface {
	CreateWithProfile(ctx context.Context, user *models.User, chef *models.ChefProfile, customer *models.CustomerProfile) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type Profiles interface {
	GetChefByUserID(ctx context.Context, userID uint) (*models.ChefProfile, error)
	GetCustomerByUserID(ctx context.Context, userID uint) (*models.CustomerProfile, error)
}

type TokenSigner interface {
	Sign(id identity.Identity) (string, error)
}

// Session is a user together with a freshly signed token.
type Session struct {
	User  *models.User
	Token string
}
