package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

// Profile is the caller's user row and, when present, its role profile.
type Profile struct {
	User     *models.User
	Chef     *models.ChefProfile
	Customer *models.CustomerProfile
}

type GetMe struct {
	repo     Repository
	profiles Profiles
}

func NewGetMe(repo Repository, profiles Profiles) *GetMe {
	return &GetMe{repo: repo, profiles: profiles}
}

func (uc *GetMe) Execute(ctx context.Context, id identity.Identity) (*Profile, error) {
	user, err := uc.repo.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("user_not_found", "user not found")
		}
		return nil, err
	}

	out := &Profile{User: user}

	switch id.Role {
	case identity.RoleChef:
		out.Chef, err = uc.profiles.GetChefByUserID(ctx, user.ID)
	case identity.RoleCustomer:
		out.Customer, err = uc.profiles.GetCustomerByUserID(ctx, user.ID)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return out, nil
}
