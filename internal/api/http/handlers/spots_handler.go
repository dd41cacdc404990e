package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/service"
)

// SpotsHandler serves the spot snapshot.
type SpotsHandler struct {
	service *service.SpotService
}

// NewSpotsHandler constructs handler.
func NewSpotsHandler(spotService *service.SpotService) *SpotsHandler {
	return &SpotsHandler{service: spotService}
}

// ListSpots GET /api/spots.
func (h *SpotsHandler) ListSpots(c *fiber.Ctx) error {
	spots, err := h.service.ListSpots(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SpotResponse, 0, len(spots))
	for _, spot := range spots {
		items = append(items, spotResponse(spot))
	}
	return c.JSON(fiber.Map{"data": items})
}

func spotResponse(spot domain.Spot) dto.SpotResponse {
	return dto.SpotResponse{
		ID:       spot.ID,
		Lot:      spot.Lot,
		Tier:     spot.Tier,
		Occupied: spot.Occupied,
	}
}
