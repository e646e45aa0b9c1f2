package dto

import "github.com/wiissal/take-a-chef/internal/models"

// ChefSummaryDTO is the public chef card. It is cached as JSON.
type ChefSummaryDTO struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Bio          string  `json:"bio"`
	Photo        string  `json:"photo"`
	Specialty    string  `json:"specialty"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
}

func NewChefSummary(c *models.ChefProfile) ChefSummaryDTO {
	return ChefSummaryDTO{
		ID:           c.ID,
		Name:         c.User.Name,
		Bio:          c.Bio,
		Photo:        c.Photo,
		Specialty:    c.Specialty,
		Rating:       c.Rating,
		TotalReviews: c.TotalReviews,
	}
}
