package middleware

import (
	"strconv"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct {
	service string
}

func NewMetricsMiddleware(service string) Middleware {
	return &metricsMiddleware{service: service}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == common.MetricsPath {
			return c.Next()
		}

		start := time.Now()
		c.Locals(common.StartTimeContextKey, start)
		chainErr := renderChainError(c, c.Next())

		labels := []string{
			c.Method(),
			routePath(c),
			m.service,
			strconv.Itoa(c.Response().StatusCode()),
		}
		prometheus.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.HTTPRequestsDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		}
		return chainErr
	}
}

// routePath prefers the matched route template to keep label cardinality bounded.
func routePath(c *fiber.Ctx) string {
	if route := c.Route(); route != nil && route.Path != "" && route.Path != "/" {
		return route.Path
	}
	return c.Path()
}
