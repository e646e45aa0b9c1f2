package account

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

const MinPasswordLength = 6

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string

	// chef
	Bio       string
	Specialty string

	// customer
	Phone   string
	Address string
}

type Register struct {
	repo        Repository
	tokens      TokenSigner
	bcryptCost  int
	checkDomain func(email string) bool
}

// NewRegister builds the use case. checkDomain may be nil to skip the
// email domain lookup.
func NewRegister(repo Repository, tokens TokenSigner, bcryptCost int, checkDomain func(string) bool) *Register {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Register{
		repo:        repo,
		tokens:      tokens,
		bcryptCost:  bcryptCost,
		checkDomain: checkDomain,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, httperr.ErrInvalidArgument("invalid_email", "email is not valid")
	}
	if uc.checkDomain != nil && !uc.checkDomain(email) {
		return nil, httperr.ErrInvalidArgument("invalid_email_domain", "email domain does not look valid")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrInvalidArgument("invalid_name", "name is required")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, httperr.ErrInvalidArgument("weak_password", "password must be at least 6 characters")
	}

	role, err := identity.ParseRole(in.Role)
	if err != nil {
		return nil, httperr.ErrInvalidArgument("invalid_role", "role must be either customer or chef")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role.String(),
	}

	var (
		chef     *models.ChefProfile
		customer *models.CustomerProfile
	)
	switch role {
	case identity.RoleChef:
		chef = &models.ChefProfile{
			Bio:       strings.TrimSpace(in.Bio),
			Specialty: strings.TrimSpace(in.Specialty),
		}
	case identity.RoleCustomer:
		customer = &models.CustomerProfile{
			Phone:   strings.TrimSpace(in.Phone),
			Address: strings.TrimSpace(in.Address),
		}
	}

	if err := uc.repo.CreateWithProfile(ctx, user, chef, customer); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Sign(identity.Identity{UserID: user.ID, Role: role})
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: token}, nil
}
