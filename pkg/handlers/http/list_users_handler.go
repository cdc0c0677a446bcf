package http

import (
	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/request"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listUsersHandler struct {
	logger *logrus.Logger
	finder appUser.Finder
}

func NewListUsersHandler(logger *logrus.Logger, finder appUser.Finder) Handler {
	return &listUsersHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary      List users
// @Description  Paginated list of users
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int    false "Page, starting at 1"
// @Param        limit query int    false "Page size, 1 to 500"
// @Param        sort  query string false "Sort fields, e.g. +lastname,-created_at"
// @Success      200 {array} response.UserResponse "Users"
// @Failure      400 {object} apperrors.Body "Invalid query"
// @Failure      401 {object} apperrors.Body "Unauthorized"
// @Router       /api/v1/users [get]
func (h *listUsersHandler) Handle(c *fiber.Ctx) error {
	pagination, err := request.ListUsersRequest{
		Page:  c.Query("page"),
		Limit: c.Query("limit"),
		Sort:  c.Query("sort"),
	}.ToPagination()
	if err != nil {
		return apperrors.Respond(c, apperrors.BadRequest(err.Error()))
	}

	users, err := h.finder.List(c.UserContext(), pagination)
	if err != nil {
		return apperrors.Respond(c, toAppError(h.logger, err))
	}
	return c.Status(fiber.StatusOK).JSON(response.NewUserListResponse(users))
}
