package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/service"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// AllocationsHandler serves allocate and release operations.
type AllocationsHandler struct {
	service *service.AllocationService
}

// NewAllocationsHandler constructs handler.
func NewAllocationsHandler(allocationService *service.AllocationService) *AllocationsHandler {
	return &AllocationsHandler{service: allocationService}
}

// Allocate POST /api/allocate.
func (h *AllocationsHandler) Allocate(c *fiber.Ctx) error {
	var req dto.AllocateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == nil || *req.UserID <= 0 {
		return apperrors.NewValidationError("user_id required", nil)
	}

	result, err := h.service.Allocate(c.UserContext(), *req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AllocateResponse{
		SpotID:    result.Spot.ID,
		Lot:       result.Spot.Lot,
		Tier:      result.Spot.Tier,
		Rationale: result.Rationale,
	}})
}

// Release POST /api/release.
func (h *AllocationsHandler) Release(c *fiber.Ctx) error {
	var req dto.ReleaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SpotID == nil || *req.SpotID <= 0 {
		return apperrors.NewValidationError("spot_id required", nil)
	}

	if err := h.service.Release(c.UserContext(), *req.SpotID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReleaseResponse{
		SpotID:  *req.SpotID,
		Message: fmt.Sprintf("spot %d released", *req.SpotID),
	}})
}
