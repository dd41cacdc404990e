package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/domain"
)

func testSpots() []domain.Spot {
	return []domain.Spot{
		{ID: 3, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: false},
		{ID: 1, Lot: domain.LotA, Tier: domain.TierPremium, Occupied: true},
		{ID: 2, Lot: domain.LotA, Tier: domain.TierPremium, Occupied: false},
		{ID: 4, Lot: domain.LotB, Tier: domain.TierStandard, Occupied: true},
	}
}

func TestMemorySpotRepositoryListOrdersByID(t *testing.T) {
	repo := NewMemorySpotRepository(testSpots())

	spots, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, spots, 4)
	for i, spot := range spots {
		assert.Equal(t, i+1, spot.ID)
	}
}

func TestMemorySpotRepositoryOccupancy(t *testing.T) {
	repo := NewMemorySpotRepository(testSpots())
	ctx := context.Background()

	occupied, total, err := repo.Occupancy(ctx, domain.LotA)
	require.NoError(t, err)
	assert.Equal(t, 1, occupied)
	assert.Equal(t, 3, total)

	occupied, total, err = repo.Occupancy(ctx, domain.LotB)
	require.NoError(t, err)
	assert.Equal(t, 1, occupied)
	assert.Equal(t, 1, total)
}

func TestMemorySpotRepositoryFindFreePicksLowestID(t *testing.T) {
	spots := append(testSpots(), domain.Spot{ID: 5, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: false})
	repo := NewMemorySpotRepository(spots)

	spot, err := repo.FindFree(context.Background(), domain.LotA, domain.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, 3, spot.ID)
}

func TestMemorySpotRepositoryFindFreeNoMatch(t *testing.T) {
	repo := NewMemorySpotRepository(testSpots())

	_, err := repo.FindFree(context.Background(), domain.LotB, domain.TierPremium)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySpotRepositoryFindFreeAnyLot(t *testing.T) {
	spots := []domain.Spot{
		{ID: 1, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 2, Lot: domain.LotB, Tier: domain.TierStandard, Occupied: false},
	}
	repo := NewMemorySpotRepository(spots)

	spot, err := repo.FindFreeAnyLot(context.Background(), domain.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, 2, spot.ID)
}

func TestMemorySpotRepositorySetOccupiedConditional(t *testing.T) {
	repo := NewMemorySpotRepository(testSpots())
	ctx := context.Background()

	require.NoError(t, repo.SetOccupied(ctx, 2, true))

	spot, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, spot.Occupied)

	// Same transition again conflicts instead of silently succeeding.
	assert.ErrorIs(t, repo.SetOccupied(ctx, 2, true), ErrConflict)
	assert.ErrorIs(t, repo.SetOccupied(ctx, 99, true), ErrNotFound)
}

func TestMemorySpotRepositoryGetByIDReturnsCopy(t *testing.T) {
	repo := NewMemorySpotRepository(testSpots())
	ctx := context.Background()

	spot, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	spot.Occupied = true

	fresh, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.False(t, fresh.Occupied)
}
