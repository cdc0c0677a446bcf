package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"
)

type timeoutMiddleware struct {
	timeout time.Duration
}

// NewTimeoutMiddleware bounds the rest of the chain with a context deadline; the websocket route is exempt.
// Store calls observe the deadline and stop early. A handler that overruns it has its
// response replaced with 408 even when it ignored the context.
func NewTimeoutMiddleware(timeout time.Duration) Middleware {
	return &timeoutMiddleware{timeout: timeout}
}

func (m *timeoutMiddleware) Middleware() fiber.Handler {
	if m.timeout <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	bounded := timeout.NewWithContext(func(c *fiber.Ctx) error {
		return c.Next()
	}, m.timeout)

	return func(c *fiber.Ctx) error {
		if c.Path() == common.WebsocketPath {
			return c.Next()
		}

		err := bounded(c)
		// the deadline error outlives the cancel that runs when bounded returns
		if errors.Is(err, fiber.ErrRequestTimeout) || errors.Is(c.UserContext().Err(), context.DeadlineExceeded) {
			c.Response().ResetBody()
			return apperrors.Respond(c, apperrors.Timeout())
		}
		return err
	}
}
