package events

import (
	"time"

	"github.com/spec-kit/parking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSpotAllocated EventType = "spot_allocated"
	EventSpotReleased  EventType = "spot_released"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SpotID    int         `json:"spot_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SpotAllocatedPayload payload.
type SpotAllocatedPayload struct {
	UserID    int         `json:"user_id"`
	Lot       domain.Lot  `json:"lot"`
	Tier      domain.Tier `json:"tier"`
	Rationale string      `json:"rationale"`
}

// SpotReleasedPayload payload.
type SpotReleasedPayload struct {
	Lot  domain.Lot  `json:"lot"`
	Tier domain.Tier `json:"tier"`
}
