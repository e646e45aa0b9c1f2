package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/wiissal/take-a-chef/internal/domain/booking"
	"github.com/wiissal/take-a-chef/internal/domain/identity"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultGuestCount = 2
	MaxGuestCount     = 50

	// conditional status writes are replayed this many times when another
	// writer changes the booking in between
	maxWriteAttempts = 3
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// resolveParty maps the caller to the profile matching its role. A missing
// profile yields a zero ProfileID rather than an error.
func resolveParty(ctx context.Context, repo domain.Repository, id identity.Identity) (domain.Party, error) {
	p := domain.Party{Identity: id}

	switch id.Role {
	case identity.RoleCustomer:
		c, err := repo.GetCustomerByUserID(ctx, id.UserID)
		if err != nil && !isNotFound(err) {
			return p, err
		}
		if c != nil {
			p.ProfileID = c.ID
		}
	case identity.RoleChef:
		c, err := repo.GetChefByUserID(ctx, id.UserID)
		if err != nil && !isNotFound(err) {
			return p, err
		}
		if c != nil {
			p.ProfileID = c.ID
		}
	}
	return p, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
