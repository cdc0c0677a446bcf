package middleware

import (
	"fmt"

	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.WithFields(logrus.Fields{
					"error": fmt.Sprint(r),
					"path":  c.Path(),
				}).Error("HTTP server panic recovered")

				err = apperrors.Respond(c, apperrors.Internal(fmt.Errorf("panic: %v", r)))
			}
		}()

		return c.Next()
	}
}
