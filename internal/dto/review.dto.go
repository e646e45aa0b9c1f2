package dto

import (
	"time"

	"github.com/wiissal/take-a-chef/internal/httpresp"
	"github.com/wiissal/take-a-chef/internal/models"
)

type ReviewDTO struct {
	ID        uint           `json:"id"`
	BookingID uint           `json:"booking_id"`
	ChefID    uint           `json:"chef_id"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment,omitempty"`
	Chef      *PartyDTO      `json:"chef,omitempty"`
	Customer  *PartyDTO      `json:"customer,omitempty"`
	Booking   *BookingRefDTO `json:"booking,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type BookingRefDTO struct {
	Date string `json:"booking_date"`
	Time string `json:"booking_time"`
}

type ReviewListDTO struct {
	Reviews    []ReviewDTO         `json:"reviews"`
	Pagination httpresp.Pagination `json:"pagination"`
}

func NewReview(rv *models.Review) ReviewDTO {
	out := ReviewDTO{
		ID:        rv.ID,
		BookingID: rv.BookingID,
		ChefID:    rv.ChefID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		Chef:      chefParty(rv.Chef),
		Customer:  customerParty(rv.Booking.Customer),
		CreatedAt: rv.CreatedAt,
	}
	if rv.Booking.ID != 0 {
		out.Booking = &BookingRefDTO{Date: rv.Booking.Date, Time: rv.Booking.Time}
	}
	return out
}

func NewReviewList(items []models.Review, page, limit int, total int64) ReviewListDTO {
	out := make([]ReviewDTO, 0, len(items))
	for i := range items {
		out = append(out, NewReview(&items[i]))
	}
	return ReviewListDTO{
		Reviews:    out,
		Pagination: httpresp.NewPagination(page, limit, total),
	}
}
