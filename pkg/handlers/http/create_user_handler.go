package http

import (
	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/request"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createUserHandler struct {
	logger  *logrus.Logger
	creator appUser.Creator
}

func NewCreateUserHandler(logger *logrus.Logger, creator appUser.Creator) Handler {
	return &createUserHandler{
		logger:  logger,
		creator: creator,
	}
}

// Handle @Summary Create a user
// @Description Creates a user; roles is a comma separated list of USER, MANAGER, ADMIN
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body request.UserRequest true "User"
// @Success 200 {object} response.UserResponse "User created"
// @Failure 400 {object} apperrors.Body "Invalid request data"
// @Failure 401 {object} apperrors.Body "Unauthorized"
// @Failure 409 {object} apperrors.Body "Username already taken"
// @Router /api/v1/users [post]
func (h *createUserHandler) Handle(c *fiber.Ctx) error {
	var req request.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(ErrInvalidJsonPayload))
	}
	if err := req.Validate(); err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(err.Error()))
	}

	entity, err := h.creator.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return apperrors.Respond(c, toAppError(h.logger, err))
	}
	return c.Status(fiber.StatusOK).JSON(response.NewUserResponse(entity))
}
