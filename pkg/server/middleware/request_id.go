package middleware

import (
	"context"
	"strings"

	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type requestIDMiddleware struct{}

func NewRequestIDMiddleware() Middleware {
	return &requestIDMiddleware{}
}

func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get(common.RequestIDHeader))
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Locals(common.RequestIDContextKey, requestID)
		c.SetUserContext(context.WithValue(c.UserContext(), common.RequestIDContextKey, requestID))
		c.Set(common.RequestIDHeader, requestID)

		return c.Next()
	}
}

// RequestID returns the id assigned to the current request, if any.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(common.RequestIDContextKey).(string)
	return id
}
