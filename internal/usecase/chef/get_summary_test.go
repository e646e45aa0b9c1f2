package chef

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/infra/cache"
	"github.com/wiissal/take-a-chef/internal/models"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) GetChefByID(ctx context.Context, id uint) (*models.ChefProfile, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.ChefProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func newCache(t *testing.T) *cache.ChefCache {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewChefCache(client, time.Minute)
}

func TestGetChefSummaryReadsThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDirectory)
	repo.On("GetChefByID", ctx, uint(5)).Return(&models.ChefProfile{
		ID:           5,
		User:         models.User{Name: "Auguste"},
		Specialty:    "French",
		Rating:       4.5,
		TotalReviews: 2,
	}, nil).Once()

	chefCache := newCache(t)
	uc := NewGetChefSummary(repo, chefCache, zerolog.Nop())

	first, err := uc.Execute(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Auguste", first.Name)
	assert.Equal(t, 2, first.TotalReviews)

	second, err := uc.Execute(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "GetChefByID", 1)

	// invalidation forces a fresh read
	require.NoError(t, chefCache.Invalidate(ctx, 5))
	repo.On("GetChefByID", ctx, uint(5)).Return(&models.ChefProfile{ID: 5, TotalReviews: 3}, nil).Once()
	third, err := uc.Execute(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, third.TotalReviews)
}

func TestGetChefSummaryDoesNotCacheRowReadBeforeInvalidation(t *testing.T) {
	ctx := context.Background()
	chefCache := newCache(t)
	repo := new(mockDirectory)

	// a review commits and invalidates while this reader holds the old row
	repo.On("GetChefByID", ctx, uint(7)).
		Run(func(mock.Arguments) {
			require.NoError(t, chefCache.Invalidate(ctx, 7))
		}).
		Return(&models.ChefProfile{ID: 7, Rating: 4, TotalReviews: 1}, nil).Once()
	repo.On("GetChefByID", ctx, uint(7)).
		Return(&models.ChefProfile{ID: 7, Rating: 4.5, TotalReviews: 2}, nil).Once()

	uc := NewGetChefSummary(repo, chefCache, zerolog.Nop())

	stale, err := uc.Execute(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, stale.TotalReviews)

	fresh, err := uc.Execute(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalReviews)
	repo.AssertExpectations(t)
}

func TestGetChefSummaryWithoutRedis(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDirectory)
	repo.On("GetChefByID", ctx, uint(1)).Return(&models.ChefProfile{ID: 1}, nil).Twice()

	uc := NewGetChefSummary(repo, cache.NewChefCache(nil, time.Minute), zerolog.Nop())
	_, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	_, err = uc.Execute(ctx, 1)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetChefSummaryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDirectory)
	repo.On("GetChefByID", ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	uc := NewGetChefSummary(repo, cache.NewChefCache(nil, time.Minute), zerolog.Nop())
	_, err := uc.Execute(ctx, 9)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
