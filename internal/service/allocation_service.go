package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/parking-service/internal/cache"
	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/events"
	"github.com/spec-kit/parking-service/internal/observability"
	"github.com/spec-kit/parking-service/internal/repository"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// AllocationResult carries the chosen spot and the cascade rule that
// matched, phrased for callers.
type AllocationResult struct {
	Spot      domain.Spot
	Rationale string
}

// AllocationService implements the density-aware allocation cascade and
// the release operation. Each call runs as one atomic read-decide-write
// sequence under a single writer lock; the repository's conditional
// update is the second guard against external writers.
type AllocationService struct {
	mu         sync.Mutex
	spots      repository.SpotRepository
	users      repository.UserRepository
	spotCache  *cache.SpotCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// AllocationDependencies bundles collaborators for the service.
type AllocationDependencies struct {
	SpotRepo   repository.SpotRepository
	UserRepo   repository.UserRepository
	SpotCache  *cache.SpotCache
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
}

// NewAllocationService constructs the service.
func NewAllocationService(deps AllocationDependencies) *AllocationService {
	return &AllocationService{
		spots:      deps.SpotRepo,
		users:      deps.UserRepo,
		spotCache:  deps.SpotCache,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// Allocate picks a free spot for the given user and marks it occupied.
//
// Target lot first: the lot with strictly lower occupancy density wins,
// ties go to Lot A. Then the cascade: premium spot on the target lot
// (premium users only), standard spot on the target lot, any premium
// spot (premium users only), any standard spot. The first match is
// taken; within a step the lowest spot id wins. When every step comes
// up empty the system is exhausted and the caller gets NO_CAPACITY.
func (s *AllocationService) Allocate(ctx context.Context, userID int) (*AllocationResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.targetLot(ctx)
	if err != nil {
		return nil, err
	}

	spot, rationale, err := s.runCascade(ctx, target, user.Premium)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, apperrors.NewNoCapacity()
	}

	if err := s.spots.SetOccupied(ctx, spot.ID, true); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("spot occupancy changed concurrently",
				map[string]any{"spot_id": spot.ID})
		}
		return nil, err
	}
	spot.Occupied = true

	s.spotCache.Invalidate(ctx)
	s.metrics.RecordAllocation(spot.Lot, spot.Tier)
	s.publish(ctx, events.Event{
		Type:   events.EventSpotAllocated,
		SpotID: spot.ID,
		Payload: events.SpotAllocatedPayload{
			UserID:    user.ID,
			Lot:       spot.Lot,
			Tier:      spot.Tier,
			Rationale: rationale,
		},
	})

	return &AllocationResult{Spot: *spot, Rationale: rationale}, nil
}

// Release clears the occupied flag on a spot. Releasing an unknown spot
// or one that is already free fails without side effects.
func (s *AllocationService) Release(ctx context.Context, spotID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	spot, err := s.spots.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("spot", map[string]any{"spot_id": spotID})
		}
		return err
	}
	if !spot.Occupied {
		return apperrors.NewAlreadyFree(spotID)
	}

	if err := s.spots.SetOccupied(ctx, spotID, false); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return apperrors.NewAlreadyFree(spotID)
		}
		return err
	}

	s.spotCache.Invalidate(ctx)
	s.metrics.RecordRelease()
	s.publish(ctx, events.Event{
		Type:   events.EventSpotReleased,
		SpotID: spotID,
		Payload: events.SpotReleasedPayload{
			Lot:  spot.Lot,
			Tier: spot.Tier,
		},
	})
	return nil
}

// targetLot compares occupancy densities and returns the less dense
// lot. Lot B is chosen only on strictly lower density; an empty lot
// counts as fully dense so it is never preferred.
func (s *AllocationService) targetLot(ctx context.Context) (domain.Lot, error) {
	densityA, err := s.density(ctx, domain.LotA)
	if err != nil {
		return "", err
	}
	densityB, err := s.density(ctx, domain.LotB)
	if err != nil {
		return "", err
	}
	if densityB < densityA {
		return domain.LotB, nil
	}
	return domain.LotA, nil
}

func (s *AllocationService) density(ctx context.Context, lot domain.Lot) (float64, error) {
	occupied, total, err := s.spots.Occupancy(ctx, lot)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 1.0, nil
	}
	return float64(occupied) / float64(total), nil
}

// runCascade walks the priority steps and returns the first free spot
// with its rationale, or (nil, "", nil) when the system is exhausted.
func (s *AllocationService) runCascade(ctx context.Context, target domain.Lot, premium bool) (*domain.Spot, string, error) {
	if premium {
		spot, err := s.findFree(ctx, target, domain.TierPremium)
		if err != nil {
			return nil, "", err
		}
		if spot != nil {
			return spot, fmt.Sprintf("allocated nearest premium spot in %s (least dense)", target.Label()), nil
		}
	}

	spot, err := s.findFree(ctx, target, domain.TierStandard)
	if err != nil {
		return nil, "", err
	}
	if spot != nil {
		if premium {
			return spot, fmt.Sprintf("premium spots in %s are full; allocated nearest standard spot", target.Label()), nil
		}
		return spot, fmt.Sprintf("allocated nearest standard spot in %s", target.Label()), nil
	}

	if premium {
		spot, err := s.findFreeAnyLot(ctx, domain.TierPremium)
		if err != nil {
			return nil, "", err
		}
		if spot != nil {
			return spot, "least dense lot full; allocated nearest available premium spot", nil
		}
	}

	spot, err = s.findFreeAnyLot(ctx, domain.TierStandard)
	if err != nil {
		return nil, "", err
	}
	if spot != nil {
		return spot, "least dense lot full; allocated nearest available standard spot", nil
	}

	return nil, "", nil
}

func (s *AllocationService) findFree(ctx context.Context, lot domain.Lot, tier domain.Tier) (*domain.Spot, error) {
	spot, err := s.spots.FindFree(ctx, lot, tier)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return spot, err
}

func (s *AllocationService) findFreeAnyLot(ctx context.Context, tier domain.Tier) (*domain.Spot, error) {
	spot, err := s.spots.FindFreeAnyLot(ctx, tier)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return spot, err
}

func (s *AllocationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
