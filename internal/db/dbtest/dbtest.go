// Package dbtest provides a migrated SQLite database and seed helpers for tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wiissal/take-a-chef/internal/db"
	"github.com/wiissal/take-a-chef/internal/models"
)

var seq atomic.Int64

// New opens a fresh file-backed SQLite database in t.TempDir. A single
// connection is used so concurrent callers queue instead of hitting
// "database is locked".
func New(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := db.Open(
		sqlite.Open(path+"?_busy_timeout=5000"),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}

func nextEmail(prefix string) string {
	return fmt.Sprintf("%s%d@example.com", prefix, seq.Add(1))
}

func SeedUser(t testing.TB, gdb *gorm.DB, name, role string) models.User {
	t.Helper()
	u := models.User{
		Name:         name,
		Email:        nextEmail(role),
		PasswordHash: "x",
		Role:         role,
	}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedChef(t testing.TB, gdb *gorm.DB, name string) models.ChefProfile {
	t.Helper()
	u := SeedUser(t, gdb, name, "chef")
	chef := models.ChefProfile{UserID: u.ID, Specialty: "French"}
	if err := gdb.Omit("User").Create(&chef).Error; err != nil {
		t.Fatalf("seed chef: %v", err)
	}
	chef.User = u
	return chef
}

func SeedCustomer(t testing.TB, gdb *gorm.DB, name string) models.CustomerProfile {
	t.Helper()
	u := SeedUser(t, gdb, name, "customer")
	customer := models.CustomerProfile{UserID: u.ID}
	if err := gdb.Omit("User").Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	customer.User = u
	return customer
}

// SeedBooking inserts a booking directly, bypassing lifecycle checks.
// daysAhead may be negative to place it in the past.
func SeedBooking(t testing.TB, gdb *gorm.DB, customerID, chefID uint, status string, daysAhead int) models.Booking {
	t.Helper()
	at := time.Now().UTC().AddDate(0, 0, daysAhead).Truncate(time.Minute)
	b := models.Booking{
		CustomerID: customerID,
		ChefID:     chefID,
		EventAt:    at,
		Date:       at.Format("2006-01-02"),
		Time:       at.Format("15:04"),
		GuestCount: 2,
		Status:     status,
	}
	if err := gdb.Omit("Customer", "Chef").Create(&b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func SeedReview(t testing.TB, gdb *gorm.DB, bookingID, chefID uint, rating int) models.Review {
	t.Helper()
	rv := models.Review{BookingID: bookingID, ChefID: chefID, Rating: rating}
	if err := gdb.Omit("Booking", "Chef").Create(&rv).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}
	return rv
}

func ReloadChef(t testing.TB, gdb *gorm.DB, id uint) models.ChefProfile {
	t.Helper()
	var chef models.ChefProfile
	if err := gdb.First(&chef, id).Error; err != nil {
		t.Fatalf("reload chef: %v", err)
	}
	return chef
}
