package http

import (
	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getUserHandler struct {
	logger *logrus.Logger
	finder appUser.Finder
}

func NewGetUserHandler(logger *logrus.Logger, finder appUser.Finder) Handler {
	return &getUserHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.UserResponse "User"
// @Failure 400 {object} apperrors.Body "Invalid user id"
// @Failure 404 {object} apperrors.Body "No user found"
// @Router /api/v1/users/{id} [get]
func (h *getUserHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(ErrInvalidUserID))
	}

	entity, err := h.finder.Get(c.UserContext(), id)
	if err != nil {
		return apperrors.Respond(c, toAppError(h.logger, err))
	}
	return c.Status(fiber.StatusOK).JSON(response.NewUserResponse(entity))
}
