package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/parking-service/internal/domain"
)

// memorySpotRepository keeps the occupancy table in process memory. It
// backs the service when no Postgres DSN is configured and gives tests
// a deterministic store.
type memorySpotRepository struct {
	mu    sync.RWMutex
	spots map[int]*domain.Spot
}

// NewMemorySpotRepository builds an in-memory repository from the given
// seed spots.
func NewMemorySpotRepository(seed []domain.Spot) SpotRepository {
	spots := make(map[int]*domain.Spot, len(seed))
	for _, s := range seed {
		spot := s
		spots[spot.ID] = &spot
	}
	return &memorySpotRepository{spots: spots}
}

func (r *memorySpotRepository) List(ctx context.Context) ([]domain.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Spot, 0, len(r.spots))
	for _, spot := range r.spots {
		result = append(result, *spot)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memorySpotRepository) GetByID(ctx context.Context, id int) (*domain.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spot, ok := r.spots[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *spot
	return &copied, nil
}

func (r *memorySpotRepository) Occupancy(ctx context.Context, lot domain.Lot) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	occupied, total := 0, 0
	for _, spot := range r.spots {
		if spot.Lot != lot {
			continue
		}
		total++
		if spot.Occupied {
			occupied++
		}
	}
	return occupied, total, nil
}

func (r *memorySpotRepository) FindFree(ctx context.Context, lot domain.Lot, tier domain.Tier) (*domain.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lowestFree(func(s *domain.Spot) bool {
		return s.Lot == lot && s.Tier == tier
	})
}

func (r *memorySpotRepository) FindFreeAnyLot(ctx context.Context, tier domain.Tier) (*domain.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lowestFree(func(s *domain.Spot) bool {
		return s.Tier == tier
	})
}

// lowestFree expects the read lock to be held.
func (r *memorySpotRepository) lowestFree(match func(*domain.Spot) bool) (*domain.Spot, error) {
	var best *domain.Spot
	for _, spot := range r.spots {
		if spot.Occupied || !match(spot) {
			continue
		}
		if best == nil || spot.ID < best.ID {
			best = spot
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	copied := *best
	return &copied, nil
}

func (r *memorySpotRepository) SetOccupied(ctx context.Context, id int, occupied bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	spot, ok := r.spots[id]
	if !ok {
		return ErrNotFound
	}
	if spot.Occupied == occupied {
		return ErrConflict
	}
	spot.Occupied = occupied
	return nil
}
