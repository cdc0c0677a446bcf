package middleware

import (
	"errors"
	"strconv"

	"github.com/NeuralTrust/Gatekeeper/pkg/app/ratelimit"
	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/NeuralTrust/Gatekeeper/pkg/config"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AddressResolver returns the remote address used to key anonymous requests.
type AddressResolver func(c *fiber.Ctx) string

type RateLimiterOption func(*rateLimiterMiddleware)

func WithAddressResolver(resolver AddressResolver) RateLimiterOption {
	return func(m *rateLimiterMiddleware) {
		if resolver != nil {
			m.addressResolver = resolver
		}
	}
}

type rateLimiterMiddleware struct {
	logger          *logrus.Logger
	limiter         ratelimit.Limiter
	jwtManager      jwt.Manager
	cfg             *config.LimiterConfig
	prefix          string
	addressResolver AddressResolver
}

func NewRateLimiterMiddleware(
	logger *logrus.Logger,
	limiter ratelimit.Limiter,
	jwtManager jwt.Manager,
	cfg *config.LimiterConfig,
	prefix string,
	opts ...RateLimiterOption,
) Middleware {
	m := &rateLimiterMiddleware{
		logger:     logger,
		limiter:    limiter,
		jwtManager: jwtManager,
		cfg:        cfg,
		prefix:     prefix,
		addressResolver: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *rateLimiterMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.cfg.Enabled || c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		identity := resolveIdentity(c, m.jwtManager)
		resolution := ratelimit.Resolve(ratelimit.ResolveInput{
			Extraction:    identity.Extraction,
			RemoteAddress: m.addressResolver(c),
			DefaultLimit:  m.cfg.RequestsPerWindow,
			WhiteList:     m.cfg.WhiteList,
			Prefix:        m.prefix,
		})

		result, err := m.limiter.Check(c.UserContext(), resolution)
		if err != nil {
			var blocked *ratelimit.BlockedError
			if errors.As(err, &blocked) {
				prometheus.RateLimitDecisions.WithLabelValues(prometheus.OutcomeBlocked).Inc()
				m.logger.WithFields(logrus.Fields{
					"request_id": RequestID(c),
					"reason":     blocked.Reason.String(),
				}).Debug("rate limiter blocked request")
				return apperrors.Respond(c, apperrors.Unauthorized())
			}
			prometheus.RateLimitDecisions.WithLabelValues(prometheus.OutcomeError).Inc()
			return apperrors.Respond(c, apperrors.Log(m.logger, apperrors.Internal(err)))
		}

		if result.Unlimited() {
			prometheus.RateLimitDecisions.WithLabelValues(prometheus.OutcomeUnlimited).Inc()
			return c.Next()
		}

		c.Set(common.RateLimitLimitHeader, strconv.FormatInt(result.Limit, 10))
		c.Set(common.RateLimitResetHeader, strconv.FormatInt(result.Reset, 10))

		if result.Exceeded() {
			prometheus.RateLimitDecisions.WithLabelValues(prometheus.OutcomeLimited).Inc()
			c.Set(common.RateLimitRemainingHeader, "0")
			c.Set(common.RetryAfterHeader, strconv.FormatInt(result.Reset, 10))
			return apperrors.Respond(c, apperrors.TooManyRequests())
		}

		prometheus.RateLimitDecisions.WithLabelValues(prometheus.OutcomeAllowed).Inc()
		c.Set(common.RateLimitRemainingHeader, strconv.FormatInt(result.Remaining, 10))
		return c.Next()
	}
}
