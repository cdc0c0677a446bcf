package http

import (
	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type updatePasswordHandler struct {
	logger   *logrus.Logger
	resetter appUser.PasswordResetter
}

func NewUpdatePasswordHandler(logger *logrus.Logger, resetter appUser.PasswordResetter) Handler {
	return &updatePasswordHandler{
		logger:   logger,
		resetter: resetter,
	}
}

// Handle @Summary Update password
// @Description Sets a new password using a live reset token and consumes the token
// @Tags Auth
// @Accept json
// @Param token path string true "Reset token"
// @Param password body request.UpdatePasswordRequest true "New password"
// @Success 200 "Password updated"
// @Failure 400 {object} apperrors.Body "Invalid request data"
// @Failure 404 {object} apperrors.Body "Unknown or expired token"
// @Router /api/v1/update-password/{token} [patch]
func (h *updatePasswordHandler) Handle(c *fiber.Ctx) error {
	token, err := uuid.Parse(c.Params("token"))
	if err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(ErrInvalidResetToken))
	}

	var req request.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(ErrInvalidJsonPayload))
	}
	if err := req.Validate(); err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(err.Error()))
	}

	if err := h.resetter.Reset(c.UserContext(), token, req.Password); err != nil {
		return apperrors.Respond(c, toAppError(h.logger, err))
	}
	return c.SendStatus(fiber.StatusOK)
}
