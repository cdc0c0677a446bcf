package middleware

import (
	"context"

	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type authGateMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

func NewAuthGateMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &authGateMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *authGateMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := resolveIdentity(c, m.jwtManager)
		if !identity.Extraction.Valid() {
			if identity.Extraction != nil {
				m.logger.WithError(identity.Extraction.Err).
					WithField("request_id", RequestID(c)).
					Debug("bearer token rejected")
			}
			return apperrors.Respond(c, apperrors.Unauthorized())
		}

		claims := identity.Extraction.Claims
		c.Locals(common.ClaimsContextKey, claims)
		c.SetUserContext(context.WithValue(c.UserContext(), common.ClaimsContextKey, claims))
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by the auth gate.
func ClaimsFrom(c *fiber.Ctx) (*jwt.Claims, bool) {
	claims, ok := c.Locals(common.ClaimsContextKey).(*jwt.Claims)
	return claims, ok && claims != nil
}
