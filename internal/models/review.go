package models

import "time"

// Review is immutable once written. The unique index on BookingID is what
// keeps a booking to a single review under concurrent writers.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"uniqueIndex;not null" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"booking"`

	ChefID uint        `gorm:"not null;index" json:"chef_id"`
	Chef   ChefProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"chef"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
