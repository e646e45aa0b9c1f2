package chef

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/dto"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/models"
)

type Directory interface {
	GetChefByID(ctx context.Context, id uint) (*models.ChefProfile, error)
}

// SummaryCache fills only if no invalidation happened since Version was read.
type SummaryCache interface {
	Get(ctx context.Context, chefID uint, dst any) (bool, error)
	Version(ctx context.Context, chefID uint) (int64, error)
	SetIfVersion(ctx context.Context, chefID uint, v any, ver int64) (bool, error)
}

// GetChefSummary serves the public chef card through a read-through cache.
// Cache failures degrade to a direct read.
type GetChefSummary struct {
	repo  Directory
	cache SummaryCache
	log   zerolog.Logger
}

func NewGetChefSummary(repo Directory, cache SummaryCache, log zerolog.Logger) *GetChefSummary {
	return &GetChefSummary{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "chef_summary").Logger(),
	}
}

func (uc *GetChefSummary) Execute(ctx context.Context, chefID uint) (*dto.ChefSummaryDTO, error) {
	var cached dto.ChefSummaryDTO
	hit, err := uc.cache.Get(ctx, chefID, &cached)
	if err != nil {
		uc.log.Warn().Err(err).Uint("chef_id", chefID).Msg("chef cache read failed")
	}
	if hit {
		return &cached, nil
	}

	ver, verErr := uc.cache.Version(ctx, chefID)
	if verErr != nil {
		uc.log.Warn().Err(verErr).Uint("chef_id", chefID).Msg("chef cache version read failed")
	}

	chef, err := uc.repo.GetChefByID(ctx, chefID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("chef_not_found", "chef not found")
		}
		return nil, err
	}

	out := dto.NewChefSummary(chef)
	if verErr == nil {
		if _, err := uc.cache.SetIfVersion(ctx, chefID, out, ver); err != nil {
			uc.log.Warn().Err(err).Uint("chef_id", chefID).Msg("chef cache write failed")
		}
	}
	return &out, nil
}
