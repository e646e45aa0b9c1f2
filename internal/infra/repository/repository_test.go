package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/db/dbtest"
	domain "github.com/wiissal/take-a-chef/internal/domain/booking"
	"github.com/wiissal/take-a-chef/internal/domain/rating"
	reviewdomain "github.com/wiissal/take-a-chef/internal/domain/review"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isTransient(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"})))
	assert.True(t, isTransient(&pgconn.PgError{Code: "08006"}))
	assert.True(t, isTransient(errors.New("database is locked")))

	assert.False(t, isTransient(nil))
	assert.False(t, isTransient(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isTransient(gorm.ErrRecordNotFound))
	assert.False(t, isTransient(httperr.ErrConflict("x", "y")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: reviews.booking_id")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isUniqueViolation(nil))
}

func TestRunInTxRetriesTransientErrors(t *testing.T) {
	gdb := dbtest.New(t)
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := runInTx(ctx, gdb, 3, func(tx *gorm.DB) error {
			attempts++
			if attempts < 3 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		err := runInTx(ctx, gdb, 1, func(tx *gorm.DB) error {
			attempts++
			return &pgconn.PgError{Code: "40P01"}
		})
		require.Error(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry business errors", func(t *testing.T) {
		attempts := 0
		err := runInTx(ctx, gdb, 5, func(tx *gorm.DB) error {
			attempts++
			return httperr.ErrConflict("review_exists", "dup")
		})
		assert.True(t, httperr.IsKind(err, httperr.KindConflict))
		assert.Equal(t, 1, attempts)
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		err := runInTx(ctx, gdb, 0, func(tx *gorm.DB) error {
			u := models.User{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x", Role: "chef"}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
			return errors.New("boom")
		})
		require.Error(t, err)

		var count int64
		require.NoError(t, gdb.Model(&models.User{}).Where("email = ?", "ghost@example.com").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestBookingRepositoryListIsScopedAndOrdered(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	chefA := dbtest.SeedChef(t, gdb, "Chef A")
	chefB := dbtest.SeedChef(t, gdb, "Chef B")
	alice := dbtest.SeedCustomer(t, gdb, "Alice")
	bob := dbtest.SeedCustomer(t, gdb, "Bob")

	b1 := dbtest.SeedBooking(t, gdb, alice.ID, chefA.ID, "pending", 3)
	b2 := dbtest.SeedBooking(t, gdb, alice.ID, chefB.ID, "confirmed", 10)
	b3 := dbtest.SeedBooking(t, gdb, alice.ID, chefA.ID, "pending", 5)
	dbtest.SeedBooking(t, gdb, bob.ID, chefA.ID, "pending", 7)

	items, total, err := repo.ListBookings(ctx, domain.ListFilter{CustomerID: alice.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, []uint{b2.ID, b3.ID, b1.ID}, []uint{items[0].ID, items[1].ID, items[2].ID})
	assert.NotEmpty(t, items[0].Chef.User.Name)
	assert.Equal(t, "Alice", items[0].Customer.User.Name)

	items, total, err = repo.ListBookings(ctx, domain.ListFilter{ChefID: chefA.ID, Status: domain.StatusPending, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)
	for _, b := range items {
		assert.Equal(t, chefA.ID, b.ChefID)
	}

	items, _, err = repo.ListBookings(ctx, domain.ListFilter{ChefID: chefA.ID, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, total, err = repo.ListBookings(ctx, domain.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestBookingRepositoryUpdateStatusIsConditional(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()

	chef := dbtest.SeedChef(t, gdb, "Chef")
	customer := dbtest.SeedCustomer(t, gdb, "Customer")
	b := dbtest.SeedBooking(t, gdb, customer.ID, chef.ID, "pending", 2)

	b.Status = "confirmed"
	ok, err := repo.UpdateBookingStatus(ctx, &b, domain.StatusPending)
	require.NoError(t, err)
	assert.True(t, ok)

	// stale "from" loses
	b.Status = "cancelled"
	ok, err = repo.UpdateBookingStatus(ctx, &b, domain.StatusPending)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
}

func TestReviewRepositoryDuplicateIsConflict(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewReviewGormRepository(gdb, 0)
	ctx := context.Background()

	chef := dbtest.SeedChef(t, gdb, "Chef")
	customer := dbtest.SeedCustomer(t, gdb, "Customer")
	b := dbtest.SeedBooking(t, gdb, customer.ID, chef.ID, "completed", -1)
	dbtest.SeedReview(t, gdb, b.ID, chef.ID, 5)

	exists, err := repo.ExistsForBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.InTransaction(ctx, func(tx reviewdomain.TxRepository) error {
		return tx.CreateReview(ctx, &models.Review{BookingID: b.ID, ChefID: chef.ID, Rating: 3})
	})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	var count int64
	require.NoError(t, gdb.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRatingStoreAndDrift(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewRatingGormRepository(gdb, 0)
	ctx := context.Background()

	chef := dbtest.SeedChef(t, gdb, "Chef")
	untouched := dbtest.SeedChef(t, gdb, "No Reviews")
	customer := dbtest.SeedCustomer(t, gdb, "Customer")

	for _, r := range []int{5, 4, 4} {
		b := dbtest.SeedBooking(t, gdb, customer.ID, chef.ID, "completed", -1)
		dbtest.SeedReview(t, gdb, b.ID, chef.ID, r)
	}

	ids, err := repo.ListDriftedChefIDs(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []uint{chef.ID}, ids)

	err = repo.WithinTx(ctx, func(store rating.Store) error {
		require.NoError(t, store.LockChef(ctx, chef.ID))
		ratings, err := store.ListChefRatings(ctx, chef.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{5, 4, 4}, ratings)
		return store.ApplyChefRating(ctx, chef.ID, rating.Summary{Rating: 4.33, TotalReviews: 3})
	})
	require.NoError(t, err)

	got := dbtest.ReloadChef(t, gdb, chef.ID)
	assert.InDelta(t, 4.33, got.Rating, 1e-9)
	assert.Equal(t, 3, got.TotalReviews)

	ids, err = repo.ListDriftedChefIDs(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, ids)

	err = repo.WithinTx(ctx, func(store rating.Store) error {
		return store.LockChef(ctx, 999999)
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.Zero(t, dbtest.ReloadChef(t, gdb, untouched.ID).TotalReviews)
}

func TestUserRepositoryCreateWithProfile(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewUserGormRepository(gdb)
	ctx := context.Background()

	user := &models.User{Name: "Gordon", Email: "gordon@example.com", PasswordHash: "h", Role: "chef"}
	chef := &models.ChefProfile{Specialty: "British"}
	require.NoError(t, repo.CreateWithProfile(ctx, user, chef, nil))
	assert.NotZero(t, chef.ID)
	assert.Equal(t, user.ID, chef.UserID)

	stored := dbtest.ReloadChef(t, gdb, chef.ID)
	assert.Zero(t, stored.Rating)
	assert.Zero(t, stored.TotalReviews)

	dup := &models.User{Name: "Other", Email: "gordon@example.com", PasswordHash: "h", Role: "customer"}
	err := repo.CreateWithProfile(ctx, dup, nil, &models.CustomerProfile{})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	var customers int64
	require.NoError(t, gdb.Model(&models.CustomerProfile{}).Count(&customers).Error)
	assert.Zero(t, customers)

	got, err := repo.GetByEmail(ctx, "gordon@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByID(ctx, 424242)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
