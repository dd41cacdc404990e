package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/service"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// UsersHandler serves user lookups.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// UserInfo POST /api/user_info.
func (h *UsersHandler) UserInfo(c *fiber.Ctx) error {
	var req dto.UserInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == nil || *req.UserID <= 0 {
		return apperrors.NewValidationError("user_id required", nil)
	}

	user, err := h.service.GetUser(c.UserContext(), *req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserResponse{
		ID:      user.ID,
		Role:    user.Role,
		Premium: user.Premium,
	}})
}
