package middleware

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	infra "github.com/NeuralTrust/Gatekeeper/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type websocketMiddleware struct {
	logger    *logrus.Logger
	semaphore *infra.Semaphore
}

// NewWebsocketMiddleware admits upgrades on the chat route while a connection slot is free.
// A completed upgrade hands the slot stored under common.WsSemaphoreKey to the
// connection handler; a failed handshake gives it back here.
func NewWebsocketMiddleware(logger *logrus.Logger, semaphore *infra.Semaphore) Middleware {
	return &websocketMiddleware{
		logger:    logger,
		semaphore: semaphore,
	}
}

func (m *websocketMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return apperrors.Respond(c, apperrors.UpgradeRequired())
		}
		slot, ok := m.semaphore.AcquireSlot()
		if !ok {
			m.logger.WithField("max_connections", m.semaphore.Capacity()).
				Warn("maximum websocket connections reached, rejecting connection")
			return apperrors.Respond(c, apperrors.TooManyRequests())
		}
		c.Locals(string(common.WsSemaphoreKey), slot)
		err := c.Next()
		if err != nil || c.Response().StatusCode() != fiber.StatusSwitchingProtocols {
			slot.Release()
			m.logger.WithError(err).Debug("websocket handshake failed, connection slot released")
		}
		return err
	}
}
