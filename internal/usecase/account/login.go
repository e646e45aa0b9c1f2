package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/httperr"
)

var errInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials", "invalid email or password")

type Login struct {
	repo   Repository
	tokens TokenSigner
}

func NewLogin(repo Repository, tokens TokenSigner) *Login {
	return &Login{repo: repo, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, httperr.ErrInvalidArgument("missing_credentials", "please provide email and password")
	}

	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	role, err := identity.ParseRole(user.Role)
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Sign(identity.Identity{UserID: user.ID, Role: role})
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: token}, nil
}
