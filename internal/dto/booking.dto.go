package dto

import (
	"time"

	"github.com/wiissal/take-a-chef/internal/httpresp"
	"github.com/wiissal/take-a-chef/internal/models"
)

// PartyDTO is the display data of the other side of a booking or review.
type PartyDTO struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type BookingDTO struct {
	ID          uint       `json:"id"`
	CustomerID  uint       `json:"customer_id"`
	ChefID      uint       `json:"chef_id"`
	Date        string     `json:"booking_date"`
	Time        string     `json:"booking_time"`
	GuestCount  int        `json:"guests"`
	Status      string     `json:"status"`
	TotalPrice  float64    `json:"total_price"`
	Chef        *PartyDTO  `json:"chef,omitempty"`
	Customer    *PartyDTO  `json:"customer,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// BookingPagination keeps the field names clients already consume.
type BookingPagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalBookings   int64 `json:"totalBookings"`
	BookingsPerPage int   `json:"bookingsPerPage"`
}

type BookingListDTO struct {
	Bookings   []BookingDTO      `json:"bookings"`
	Pagination BookingPagination `json:"pagination"`
}

func chefParty(c models.ChefProfile) *PartyDTO {
	if c.ID == 0 {
		return nil
	}
	return &PartyDTO{ID: c.ID, UserID: c.UserID, Name: c.User.Name, Email: c.User.Email}
}

func customerParty(c models.CustomerProfile) *PartyDTO {
	if c.ID == 0 {
		return nil
	}
	return &PartyDTO{ID: c.ID, UserID: c.UserID, Name: c.User.Name, Email: c.User.Email}
}

func NewBooking(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		ChefID:      b.ChefID,
		Date:        b.Date,
		Time:        b.Time,
		GuestCount:  b.GuestCount,
		Status:      b.Status,
		TotalPrice:  b.TotalPrice,
		Chef:        chefParty(b.Chef),
		Customer:    customerParty(b.Customer),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CancelledAt: b.CancelledAt,
		CompletedAt: b.CompletedAt,
	}
}

func NewBookingList(items []models.Booking, page, limit int, total int64) BookingListDTO {
	out := make([]BookingDTO, 0, len(items))
	for i := range items {
		out = append(out, NewBooking(&items[i]))
	}

	p := httpresp.NewPagination(page, limit, total)
	return BookingListDTO{
		Bookings: out,
		Pagination: BookingPagination{
			CurrentPage:     p.CurrentPage,
			TotalPages:      p.TotalPages,
			TotalBookings:   p.TotalItems,
			BookingsPerPage: p.PerPage,
		},
	}
}
