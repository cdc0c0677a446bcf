package http

import (
	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type deleteUserHandler struct {
	logger  *logrus.Logger
	deleter appUser.Deleter
}

func NewDeleteUserHandler(logger *logrus.Logger, deleter appUser.Deleter) Handler {
	return &deleteUserHandler{
		logger:  logger,
		deleter: deleter,
	}
}

// Handle @Summary Delete a user
// @Description Soft deletes the user; requires the ADMIN role
// @Tags Users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "User deleted"
// @Failure 403 {object} apperrors.Body "Forbidden"
// @Failure 404 {object} apperrors.Body "No user found"
// @Router /api/v1/users/{id} [delete]
func (h *deleteUserHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(ErrInvalidUserID))
	}

	if err := h.deleter.Delete(c.UserContext(), id); err != nil {
		return apperrors.Respond(c, toAppError(h.logger, err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
