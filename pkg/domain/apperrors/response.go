package apperrors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Body is the JSON shape of every error response.
type Body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var statusKind = map[int]Kind{
	http.StatusBadRequest:          KindBadRequest,
	http.StatusUnauthorized:        KindUnauthorized,
	http.StatusForbidden:           KindForbidden,
	http.StatusNotFound:            KindNotFound,
	http.StatusMethodNotAllowed:    KindMethodNotAllowed,
	http.StatusRequestTimeout:      KindTimeout,
	http.StatusConflict:            KindConflict,
	http.StatusUnprocessableEntity: KindUnprocessableEntity,
	http.StatusTooManyRequests:     KindTooManyRequests,
	http.StatusUpgradeRequired:     KindUpgradeRequired,
}

// Respond writes err as a {code, message} body.
func Respond(c *fiber.Ctx, err error) error {
	appErr := From(err)
	return c.Status(appErr.Status()).JSON(Body{
		Code:    appErr.Status(),
		Message: appErr.PublicMessage(),
	})
}

// FiberErrorHandler renders errors returned by handlers, including fiber's
// own 404/405/413, with the common error body.
func FiberErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			kind, ok := statusKind[fiberErr.Code]
			if !ok {
				if fiberErr.Code >= http.StatusInternalServerError {
					Log(logger, Internal(err))
					return Respond(c, Internal(err))
				}
				return c.Status(fiberErr.Code).JSON(Body{Code: fiberErr.Code, Message: fiberErr.Message})
			}
			message := fiberErr.Message
			if kind == KindMethodNotAllowed {
				message = ""
			}
			return Respond(c, New(kind, message, nil))
		}

		appErr := From(err)
		Log(logger, appErr)
		return Respond(c, appErr)
	}
}
