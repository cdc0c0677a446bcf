package http

import (
	"net/url"

	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type forgottenPasswordHandler struct {
	logger   *logrus.Logger
	resetter appUser.PasswordResetter
}

func NewForgottenPasswordHandler(logger *logrus.Logger, resetter appUser.PasswordResetter) Handler {
	return &forgottenPasswordHandler{
		logger:   logger,
		resetter: resetter,
	}
}

// Handle @Summary Request a password reset
// @Description Creates or replaces the password reset of the user; the token is returned, not mailed
// @Tags Auth
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} response.PasswordResetResponse "Reset created"
// @Failure 400 {object} apperrors.Body "Invalid email"
// @Failure 404 {object} apperrors.Body "No user found"
// @Router /api/v1/forgotten-password/{email} [post]
func (h *forgottenPasswordHandler) Handle(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || !user.ValidEmail(email) {
		return apperrors.Respond(c, apperrors.BadRequest(user.ErrInvalidUsername.Error()))
	}

	reset, err := h.resetter.Request(c.UserContext(), email)
	if err != nil {
		return apperrors.Respond(c, toAppError(h.logger, err))
	}
	return c.Status(fiber.StatusOK).JSON(response.NewPasswordResetResponse(reset))
}
