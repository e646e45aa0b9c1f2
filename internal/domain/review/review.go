package review

import (
	"context"
	"unicode/utf8"

	"github.com/wiissal/take-a-chef/internal/domain/rating"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return httperr.ErrInvalidArgument("invalid_rating", "rating must be between 1 and 5")
	}
	return nil
}

func ValidateComment(c string) error {
	if utf8.RuneCountInString(c) > MaxCommentLength {
		return httperr.ErrInvalidArgument("comment_too_long", "comment cannot exceed 1000 characters")
	}
	return nil
}

type Repository interface {
	GetCustomerByUserID(ctx context.Context, userID uint) (*models.CustomerProfile, error)
	GetChefByID(ctx context.Context, id uint) (*models.ChefProfile, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ExistsForBooking(ctx context.Context, bookingID uint) (bool, error)

	// GetReviewDetails loads the review with booking, chef and customer users.
	GetReviewDetails(ctx context.Context, id uint) (*models.Review, error)
	ListByChef(ctx context.Context, chefID uint, page, limit int) ([]models.Review, int64, error)

	// InTransaction runs fn in one transaction, retrying it from the start on
	// transient store failures.
	InTransaction(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository is the transaction-bound view handed to InTransaction callbacks.
type TxRepository interface {
	CreateReview(ctx context.Context, rv *models.Review) error
	Ratings() rating.Store
}
