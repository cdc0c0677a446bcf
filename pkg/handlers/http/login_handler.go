package http

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/app/auth"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/request"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type loginHandler struct {
	logger        *logrus.Logger
	authenticator auth.Authenticator
}

func NewLoginHandler(logger *logrus.Logger, authenticator auth.Authenticator) Handler {
	return &loginHandler{
		logger:        logger,
		authenticator: authenticator,
	}
}

// Handle @Summary Login
// @Description Exchanges credentials for a signed bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body request.LoginRequest true "Credentials"
// @Success 200 {object} response.LoginResponse "Token issued"
// @Failure 400 {object} apperrors.Body "Invalid request data"
// @Failure 401 {object} apperrors.Body "Unknown credentials"
// @Failure 500 {object} apperrors.Body "Internal server error"
// @Router /api/v1/login [post]
func (h *loginHandler) Handle(c *fiber.Ctx) error {
	var req request.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to parse login request")
		return apperrors.Respond(c, apperrors.BadRequest(ErrInvalidJsonPayload))
	}
	if err := req.Validate(); err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(err.Error()))
	}

	out, err := h.authenticator.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return apperrors.Respond(c, toAppError(h.logger, err))
	}
	return c.Status(fiber.StatusOK).JSON(response.NewLoginResponse(out))
}
