package dto

import "github.com/spec-kit/parking-service/internal/domain"

// SpotResponse is the wire form of a parking spot.
type SpotResponse struct {
	ID       int         `json:"spot_id"`
	Lot      domain.Lot  `json:"lot"`
	Tier     domain.Tier `json:"tier"`
	Occupied bool        `json:"is_occupied"`
}

// AllocateRequest payload.
type AllocateRequest struct {
	UserID *int `json:"user_id"`
}

// AllocateResponse reports the chosen spot and the matched cascade rule.
type AllocateResponse struct {
	SpotID    int         `json:"allocated_spot_id"`
	Lot       domain.Lot  `json:"lot"`
	Tier      domain.Tier `json:"tier"`
	Rationale string      `json:"rationale"`
}

// ReleaseRequest payload.
type ReleaseRequest struct {
	SpotID *int `json:"spot_id"`
}

// ReleaseResponse confirms a release.
type ReleaseResponse struct {
	SpotID  int    `json:"spot_id"`
	Message string `json:"message"`
}
