package middleware

import (
	"strings"

	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/gofiber/fiber/v2"
)

var alwaysExposed = []string{
	common.RateLimitLimitHeader,
	common.RateLimitRemainingHeader,
	common.RateLimitResetHeader,
	common.RetryAfterHeader,
	common.RequestIDHeader,
}

type corsMiddleware struct {
	allowOrigins     []string
	allowMethods     []string
	allowCredentials bool
	exposeHeaders    []string
	maxAge           string
}

func NewCORSMiddleware(
	allowOrigins []string,
	allowMethods []string,
	allowCredentials bool,
	exposeHeaders []string,
	maxAge string,
) Middleware {
	return &corsMiddleware{
		allowOrigins:     allowOrigins,
		allowMethods:     allowMethods,
		allowCredentials: allowCredentials,
		exposeHeaders:    mergeHeaders(alwaysExposed, exposeHeaders),
		maxAge:           maxAge,
	}
}

func (m *corsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" || !m.allowed(origin) {
			return c.Next()
		}

		c.Vary(fiber.HeaderOrigin)
		if m.allowCredentials || !hasStar(m.allowOrigins) {
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		} else {
			c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		}
		if m.allowCredentials {
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		}
		c.Set(fiber.HeaderAccessControlExposeHeaders, strings.Join(m.exposeHeaders, ", "))

		if c.Method() == fiber.MethodOptions && c.Get(fiber.HeaderAccessControlRequestMethod) != "" {
			c.Set(fiber.HeaderAccessControlAllowMethods, strings.Join(m.allowMethods, ", "))
			if reqHeaders := c.Get(fiber.HeaderAccessControlRequestHeaders); reqHeaders != "" {
				c.Set(fiber.HeaderAccessControlAllowHeaders, reqHeaders)
			} else {
				c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")
			}
			if m.maxAge != "" {
				c.Set(fiber.HeaderAccessControlMaxAge, m.maxAge)
			}
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func (m *corsMiddleware) allowed(origin string) bool {
	for _, o := range m.allowOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func hasStar(arr []string) bool {
	for _, v := range arr {
		if v == "*" {
			return true
		}
	}
	return false
}

func mergeHeaders(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, h := range append(append([]string{}, base...), extra...) {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(h))
	}
	return out
}
