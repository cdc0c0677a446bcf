package middleware

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
)

type roleGuardMiddleware struct {
	roles []user.Role
}

// NewRoleGuardMiddleware must run behind the auth gate.
func NewRoleGuardMiddleware(roles ...user.Role) Middleware {
	return &roleGuardMiddleware{roles: roles}
}

func (m *roleGuardMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return apperrors.Respond(c, apperrors.Unauthorized())
		}
		if !user.HasAnyRole(claims.UserRoles, m.roles...) {
			return apperrors.Respond(c, apperrors.Forbidden())
		}
		return c.Next()
	}
}
