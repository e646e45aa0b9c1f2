package models

import "time"

// ChefProfile is one-to-one with a chef-role User. Rating and TotalReviews are
// derived from the review ledger and only written by the rating aggregator.
type ChefProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Bio       string `gorm:"type:text" json:"bio"`
	Photo     string `gorm:"size:500" json:"photo"`
	Specialty string `gorm:"size:100" json:"specialty"`

	Rating       float64 `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	TotalReviews int     `gorm:"not null;default:0" json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
