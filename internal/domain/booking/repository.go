package booking

import (
	"context"

	"github.com/wiissal/take-a-chef/internal/models"
)

// ListFilter scopes a listing to exactly one owner profile.
type ListFilter struct {
	CustomerID uint
	ChefID     uint
	Status     Status
	Page       int
	Limit      int
}

type Repository interface {
	// -------- Directory --------
	GetChefByID(ctx context.Context, id uint) (*models.ChefProfile, error)
	GetChefByUserID(ctx context.Context, userID uint) (*models.ChefProfile, error)
	GetCustomerByUserID(ctx context.Context, userID uint) (*models.CustomerProfile, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	// GetBookingDetails loads the booking with chef and customer users.
	GetBookingDetails(ctx context.Context, id uint) (*models.Booking, error)

	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, int64, error)

	// UpdateBookingStatus writes b's status fields only if the stored status
	// still equals from. It returns false when another writer got there first.
	UpdateBookingStatus(ctx context.Context, b *models.Booking, from Status) (bool, error)
}
