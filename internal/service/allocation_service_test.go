package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/events"
	"github.com/spec-kit/parking-service/internal/observability"
	"github.com/spec-kit/parking-service/internal/persistence"
	"github.com/spec-kit/parking-service/internal/repository"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

func newSeededService(t *testing.T) (*AllocationService, repository.SpotRepository) {
	t.Helper()
	spots := repository.NewMemorySpotRepository(persistence.SeedSpots())
	users := repository.NewMemoryUserRepository(persistence.SeedUsers())
	svc := NewAllocationService(AllocationDependencies{
		SpotRepo: spots,
		UserRepo: users,
		Metrics:  observability.NewMetrics(),
	})
	return svc, spots
}

func newCustomService(t *testing.T, spots []domain.Spot, users []domain.User) (*AllocationService, repository.SpotRepository) {
	t.Helper()
	spotRepo := repository.NewMemorySpotRepository(spots)
	userRepo := repository.NewMemoryUserRepository(users)
	svc := NewAllocationService(AllocationDependencies{
		SpotRepo: spotRepo,
		UserRepo: userRepo,
		Metrics:  observability.NewMetrics(),
	})
	return svc, spotRepo
}

func domainErrorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	return domainErr.Code
}

// Seed layout: both lots sit at density 0.5, so the tie sends every
// allocation to Lot A first.
func TestAllocateStandardUserPicksLowestFreeStandardInLotA(t *testing.T) {
	svc, spots := newSeededService(t)

	result, err := svc.Allocate(context.Background(), 102)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Spot.ID)
	assert.Equal(t, domain.LotA, result.Spot.Lot)
	assert.Equal(t, domain.TierStandard, result.Spot.Tier)
	assert.Equal(t, "allocated nearest standard spot in Lot A", result.Rationale)

	spot, err := spots.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, spot.Occupied)
}

func TestAllocatePremiumUserPicksLowestFreePremiumInLotA(t *testing.T) {
	svc, _ := newSeededService(t)

	result, err := svc.Allocate(context.Background(), 101)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Spot.ID)
	assert.Equal(t, domain.TierPremium, result.Spot.Tier)
	assert.Equal(t, "allocated nearest premium spot in Lot A (least dense)", result.Rationale)
}

func TestAllocateTargetsStrictlyLessDenseLot(t *testing.T) {
	spots := []domain.Spot{
		{ID: 1, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 2, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: false},
		{ID: 3, Lot: domain.LotB, Tier: domain.TierStandard, Occupied: false},
		{ID: 4, Lot: domain.LotB, Tier: domain.TierStandard, Occupied: false},
	}
	svc, _ := newCustomService(t, spots, persistence.SeedUsers())

	// Lot A density 0.5, Lot B density 0.0.
	result, err := svc.Allocate(context.Background(), 102)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Spot.ID)
	assert.Equal(t, domain.LotB, result.Spot.Lot)
}

func TestAllocateDensityTieFavorsLotA(t *testing.T) {
	spots := []domain.Spot{
		{ID: 1, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: false},
		{ID: 2, Lot: domain.LotB, Tier: domain.TierStandard, Occupied: false},
	}
	svc, _ := newCustomService(t, spots, persistence.SeedUsers())

	result, err := svc.Allocate(context.Background(), 102)
	require.NoError(t, err)
	assert.Equal(t, domain.LotA, result.Spot.Lot)
}

func TestAllocateEmptyLotIsNeverPreferred(t *testing.T) {
	// Lot B has no spots at all and counts as fully dense; Lot A stays
	// the target even at 0.75 occupancy.
	spots := []domain.Spot{
		{ID: 1, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 2, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 3, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 4, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: false},
	}
	svc, _ := newCustomService(t, spots, persistence.SeedUsers())

	result, err := svc.Allocate(context.Background(), 102)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Spot.ID)
}

func TestPremiumUserFallsBackToStandardWhenTargetPremiumFull(t *testing.T) {
	svc, spots := newSeededService(t)
	ctx := context.Background()

	// Fill the free premium spots in Lot A; Lot A stays the less dense
	// target because Lot B fills up further.
	for _, id := range []int{2, 4, 13, 15} {
		require.NoError(t, spots.SetOccupied(ctx, id, true))
	}

	result, err := svc.Allocate(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Spot.ID)
	assert.Equal(t, domain.TierStandard, result.Spot.Tier)
	assert.Equal(t, "premium spots in Lot A are full; allocated nearest standard spot", result.Rationale)
}

func TestPremiumUserNeverGetsStandardWhileTargetPremiumFree(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	// Both free premium spots in Lot A (2 and 4) must go out before any
	// standard spot is handed to a premium user targeting Lot A.
	first, err := svc.Allocate(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, first.Spot.Tier)
	assert.Equal(t, 2, first.Spot.ID)

	second, err := svc.Allocate(ctx, 103)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, second.Spot.Tier)
	assert.Equal(t, 12, second.Spot.ID) // Lot B is now strictly less dense
}

func TestStandardUserOverflowsToOtherLot(t *testing.T) {
	// Lot A is the less dense target but has only premium spots free; a
	// standard user overflows to the nearest standard spot system-wide.
	spots := []domain.Spot{
		{ID: 1, Lot: domain.LotA, Tier: domain.TierPremium, Occupied: false},
		{ID: 2, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 3, Lot: domain.LotB, Tier: domain.TierStandard, Occupied: false},
		{ID: 4, Lot: domain.LotB, Tier: domain.TierStandard, Occupied: true},
		{ID: 5, Lot: domain.LotB, Tier: domain.TierStandard, Occupied: true},
	}
	svc, _ := newCustomService(t, spots, persistence.SeedUsers())

	result, err := svc.Allocate(context.Background(), 102)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Spot.ID)
	assert.Equal(t, "least dense lot full; allocated nearest available standard spot", result.Rationale)
}

func TestAllocateNoCapacityLeavesStateUnchanged(t *testing.T) {
	svc, spots := newSeededService(t)
	ctx := context.Background()

	// Exhaust every standard spot in both lots; premium spots stay free
	// but are out of reach for a standard user.
	for _, id := range []int{5, 7, 9, 13, 15, 17, 19} {
		require.NoError(t, spots.SetOccupied(ctx, id, true))
	}
	before, err := spots.List(ctx)
	require.NoError(t, err)

	_, err = svc.Allocate(ctx, 102)
	require.Error(t, err)
	assert.Equal(t, "NO_CAPACITY", domainErrorCode(t, err))

	after, err := spots.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAllocateUnknownUser(t *testing.T) {
	svc, spots := newSeededService(t)
	ctx := context.Background()

	before, err := spots.List(ctx)
	require.NoError(t, err)

	_, err = svc.Allocate(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, err))

	after, err := spots.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAllocateMarksExactlyOneSpot(t *testing.T) {
	svc, spots := newSeededService(t)
	ctx := context.Background()

	before, err := spots.List(ctx)
	require.NoError(t, err)

	result, err := svc.Allocate(ctx, 102)
	require.NoError(t, err)

	after, err := spots.List(ctx)
	require.NoError(t, err)

	changed := 0
	for i := range after {
		if after[i].Occupied != before[i].Occupied {
			changed++
			assert.Equal(t, result.Spot.ID, after[i].ID)
			assert.True(t, after[i].Occupied)
		}
	}
	assert.Equal(t, 1, changed)
}

func TestReleaseTwiceReportsAlreadyFree(t *testing.T) {
	svc, spots := newSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.Release(ctx, 1))

	spot, err := spots.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, spot.Occupied)

	err = svc.Release(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, "ALREADY_FREE", domainErrorCode(t, err))
}

func TestReleaseUnknownSpot(t *testing.T) {
	svc, _ := newSeededService(t)

	err := svc.Release(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, err))
}

func TestAllocatePublishesEvent(t *testing.T) {
	spotRepo := repository.NewMemorySpotRepository(persistence.SeedSpots())
	userRepo := repository.NewMemoryUserRepository(persistence.SeedUsers())
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventSpotAllocated, func(ctx context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	svc := NewAllocationService(AllocationDependencies{
		SpotRepo:   spotRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Metrics:    observability.NewMetrics(),
	})

	result, err := svc.Allocate(context.Background(), 101)
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, result.Spot.ID, received[0].SpotID)
	assert.NotEmpty(t, received[0].ID)

	payload, ok := received[0].Payload.(events.SpotAllocatedPayload)
	require.True(t, ok)
	assert.Equal(t, 101, payload.UserID)
	assert.Equal(t, result.Rationale, payload.Rationale)
}
