package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/wiissal/take-a-chef/internal/domain/review"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type ListChefReviewsResult struct {
	Items []models.Review
	Total int64
	Page  int
	Limit int
}

type ListChefReviews struct {
	repo domain.Repository
}

func NewListChefReviews(repo domain.Repository) *ListChefReviews {
	return &ListChefReviews{repo: repo}
}

// Execute returns a chef's reviews, newest first.
func (uc *ListChefReviews) Execute(
	ctx context.Context,
	chefID uint,
	page int,
	limit int,
) (*ListChefReviewsResult, error) {

	if _, err := uc.repo.GetChefByID(ctx, chefID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("chef_not_found", "chef not found")
		}
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, total, err := uc.repo.ListByChef(ctx, chefID, page, limit)
	if err != nil {
		return nil, err
	}

	return &ListChefReviewsResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}
