package middleware

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
)

// Identity is the best-effort bearer extraction of a request.
// A nil Extraction means no credential was presented.
type Identity struct {
	Extraction *jwt.Extraction
}

type identityMiddleware struct {
	jwtManager jwt.Manager
}

func NewIdentityMiddleware(jwtManager jwt.Manager) Middleware {
	return &identityMiddleware{jwtManager: jwtManager}
}

func (m *identityMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		resolveIdentity(c, m.jwtManager)
		return c.Next()
	}
}

// resolveIdentity reuses the extraction stored by the identity stage, computing it when absent.
func resolveIdentity(c *fiber.Ctx, jwtManager jwt.Manager) *Identity {
	if identity, ok := c.Locals(common.IdentityContextKey).(*Identity); ok && identity != nil {
		return identity
	}
	identity := &Identity{
		Extraction: jwtManager.ExtractFromHeader(c.Get(common.AuthorizationHeader)),
	}
	c.Locals(common.IdentityContextKey, identity)
	return identity
}
