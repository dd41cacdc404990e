package service

import (
	"context"

	"github.com/spec-kit/parking-service/internal/cache"
	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/repository"
)

// SpotService serves spot snapshots, read-through cached in Redis.
type SpotService struct {
	spots     repository.SpotRepository
	spotCache *cache.SpotCache
}

// NewSpotService constructs the service.
func NewSpotService(spots repository.SpotRepository, spotCache *cache.SpotCache) *SpotService {
	return &SpotService{spots: spots, spotCache: spotCache}
}

// ListSpots returns the full snapshot ordered by id ascending.
func (s *SpotService) ListSpots(ctx context.Context) ([]domain.Spot, error) {
	if spots, ok := s.spotCache.Get(ctx); ok {
		return spots, nil
	}

	spots, err := s.spots.List(ctx)
	if err != nil {
		return nil, err
	}
	s.spotCache.Set(ctx, spots)
	return spots, nil
}
