package domain

// Lot identifies one of the two physical parking locations.
type Lot string

const (
	LotA Lot = "LOT_A"
	LotB Lot = "LOT_B"
)

// Lots lists the known locations in preference order. Lot A is the
// closer lot and wins density ties.
var Lots = []Lot{LotA, LotB}

// Label returns the human-readable lot name used in rationale messages.
func (l Lot) Label() string {
	switch l {
	case LotA:
		return "Lot A"
	case LotB:
		return "Lot B"
	}
	return string(l)
}

// Tier classifies a spot or user as premium or standard.
type Tier string

const (
	TierPremium  Tier = "PREMIUM"
	TierStandard Tier = "STANDARD"
)

// Spot is a single parking spot. Spots are created at initialization
// and never deleted; only the occupied flag changes.
type Spot struct {
	ID       int
	Lot      Lot
	Tier     Tier
	Occupied bool
}
