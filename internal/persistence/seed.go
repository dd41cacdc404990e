package persistence

import "github.com/spec-kit/parking-service/internal/domain"

// SeedSpots returns the fixed 20-spot layout: ids 1-10 in Lot A
// (1-4 premium, 5-10 standard), ids 11-20 in Lot B (11-12 premium,
// 13-20 standard with even ids occupied). Allocation scenarios and the
// SQL init migration must stay in sync with this table.
func SeedSpots() []domain.Spot {
	spots := []domain.Spot{
		{ID: 1, Lot: domain.LotA, Tier: domain.TierPremium, Occupied: true},
		{ID: 2, Lot: domain.LotA, Tier: domain.TierPremium, Occupied: false},
		{ID: 3, Lot: domain.LotA, Tier: domain.TierPremium, Occupied: true},
		{ID: 4, Lot: domain.LotA, Tier: domain.TierPremium, Occupied: false},
		{ID: 5, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: false},
		{ID: 6, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 7, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: false},
		{ID: 8, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 9, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: false},
		{ID: 10, Lot: domain.LotA, Tier: domain.TierStandard, Occupied: true},
		{ID: 11, Lot: domain.LotB, Tier: domain.TierPremium, Occupied: true},
		{ID: 12, Lot: domain.LotB, Tier: domain.TierPremium, Occupied: false},
	}
	for id := 13; id <= 20; id++ {
		spots = append(spots, domain.Spot{
			ID:       id,
			Lot:      domain.LotB,
			Tier:     domain.TierStandard,
			Occupied: id%2 == 0,
		})
	}
	return spots
}

// SeedUsers returns the fixed user table.
func SeedUsers() []domain.User {
	return []domain.User{
		{ID: 101, Role: "Teacher", Premium: true},
		{ID: 102, Role: "Student", Premium: false},
		{ID: 103, Role: "Premium Student", Premium: true},
	}
}
