package middleware

import (
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type accessLogMiddleware struct {
	logger *logrus.Logger
}

func NewAccessLogMiddleware(logger *logrus.Logger) Middleware {
	return &accessLogMiddleware{logger: logger}
}

func (m *accessLogMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := renderChainError(c, c.Next())

		status := c.Response().StatusCode()
		ua := utils.ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage))
		entry := m.logger.WithFields(logrus.Fields{
			"request_id": RequestID(c),
			"method":     c.Method(),
			"host":       c.Hostname(),
			"path":       c.Path(),
			"uri":        string(c.Request().RequestURI()),
			"status":     status,
			"latency":    time.Since(start).String(),
			"user_agent": c.Get(fiber.HeaderUserAgent),
			"version":    c.Protocol(),
			"ua_device":  ua.Device,
			"ua_os":      ua.OS,
			"ua_browser": ua.Browser,
		})

		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request completed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
		return chainErr
	}
}
