package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint            `gorm:"not null;index" json:"customer_id"`
	Customer   CustomerProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer"`

	ChefID uint        `gorm:"not null;index" json:"chef_id"`
	Chef   ChefProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"chef"`

	// EventAt is Date+Time resolved in the service timezone; listings sort on it.
	EventAt time.Time `gorm:"not null;index" json:"event_at"`
	Date    string    `gorm:"column:booking_date;size:10;not null" json:"date"`
	Time    string    `gorm:"column:booking_time;size:5;not null" json:"time"`

	GuestCount int     `gorm:"not null" json:"guest_count"`
	Status     string  `gorm:"size:20;not null;default:'pending';index" json:"status"`
	TotalPrice float64 `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
