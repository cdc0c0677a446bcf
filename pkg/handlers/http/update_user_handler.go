package http

import (
	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/request"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type updateUserHandler struct {
	logger  *logrus.Logger
	updater appUser.Updater
}

func NewUpdateUserHandler(logger *logrus.Logger, updater appUser.Updater) Handler {
	return &updateUserHandler{
		logger:  logger,
		updater: updater,
	}
}

// Handle @Summary Update a user
// @Description Replaces every writable field of the user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body request.UserRequest true "User"
// @Success 200 {object} response.UserResponse "User updated"
// @Failure 400 {object} apperrors.Body "Invalid request data"
// @Failure 404 {object} apperrors.Body "No user found"
// @Failure 409 {object} apperrors.Body "Username already taken"
// @Router /api/v1/users/{id} [put]
func (h *updateUserHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(ErrInvalidUserID))
	}

	var req request.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(ErrInvalidJsonPayload))
	}
	if err := req.Validate(); err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(err.Error()))
	}

	entity, err := h.updater.Update(c.UserContext(), id, req.ToInput())
	if err != nil {
		return apperrors.Respond(c, toAppError(h.logger, err))
	}
	return c.Status(fiber.StatusOK).JSON(response.NewUserResponse(entity))
}
