package middleware

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

type basicAuthMiddleware struct {
	username string
	password string
}

// NewBasicAuthMiddleware protects the metrics listener. Empty credentials disable it.
func NewBasicAuthMiddleware(username, password string) Middleware {
	return &basicAuthMiddleware{username: username, password: password}
}

func (m *basicAuthMiddleware) Middleware() fiber.Handler {
	if m.username == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	return basicauth.New(basicauth.Config{
		Users: map[string]string{m.username: m.password},
		Realm: "metrics",
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `basic realm="metrics"`)
			return apperrors.Respond(c, apperrors.Unauthorized())
		},
	})
}
