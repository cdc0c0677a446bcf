package websocket

import (
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	infraWebsocket "github.com/NeuralTrust/Gatekeeper/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const greetingCount = 10

type chatHandler struct {
	logger           *logrus.Logger
	hub              infraWebsocket.Hub
	greetingInterval time.Duration
}

func NewChatHandler(logger *logrus.Logger, hub infraWebsocket.Hub, greetingInterval time.Duration) Handler {
	return &chatHandler{
		logger:           logger,
		hub:              hub,
		greetingInterval: greetingInterval,
	}
}

// Handle joins the connection to the chat with the username of its first frame,
// greets it, then relays every following frame to all members.
func (h *chatHandler) Handle(conn *websocket.Conn) {
	if slot, ok := conn.Locals(string(common.WsSemaphoreKey)).(*infraWebsocket.Slot); ok {
		defer slot.Release()
	}
	defer func() {
		_ = conn.Close()
	}()

	var parser fastjson.Parser

	_, data, err := conn.ReadMessage()
	if err != nil {
		h.logger.WithError(err).Debug("chat client disconnected before joining")
		return
	}
	join, err := infraWebsocket.ParseChatMessage(&parser, data)
	if err != nil {
		h.reject(conn, err)
		return
	}
	username := join.Username
	if err := h.hub.Register(username, conn); err != nil {
		h.reject(conn, err)
		return
	}
	defer h.hub.Unregister(username)
	conn.Locals(string(common.WsUsernameContextKey), username)

	log := h.logger.WithField("username", username)
	log.Info("chat client joined")

	done := make(chan struct{})
	greeted := make(chan struct{})
	go func() {
		defer close(greeted)
		h.greet(username, done)
	}()
	defer func() {
		close(done)
		<-greeted
	}()

	if join.Message != "" {
		h.hub.Broadcast(join)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("chat connection closed unexpectedly")
			}
			log.Info("chat client left")
			return
		}
		msg, err := infraWebsocket.ParseChatMessage(&parser, data)
		if errors.Is(err, infraWebsocket.ErrInvalidFrame) {
			log.WithError(err).Debug("ignoring invalid chat frame")
			continue
		}
		msg.Username = username
		h.hub.Broadcast(msg)
	}
}

func (h *chatHandler) greet(username string, done <-chan struct{}) {
	for i := 1; i <= greetingCount; i++ {
		if i > 1 && h.greetingInterval > 0 {
			select {
			case <-done:
				return
			case <-time.After(h.greetingInterval):
			}
		}
		if err := h.hub.Send(username, []byte(fmt.Sprintf("Hi! - %d", i))); err != nil {
			h.logger.WithError(err).WithField("username", username).Debug("chat greeting interrupted")
			return
		}
	}
}

func (h *chatHandler) reject(conn *websocket.Conn, reason error) {
	h.logger.WithError(reason).Debug("chat join refused")
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason.Error()))
}
