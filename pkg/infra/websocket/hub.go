package websocket

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrUsernameInUse = errors.New("chat username already connected")
	errMemberClosed  = errors.New("chat member left")
)

// TextMessage matches the RFC 6455 text frame opcode used by gorilla and fiber conns.
const TextMessage = 1

// Sender is the write side of a chat connection.
type Sender interface {
	WriteMessage(messageType int, data []byte) error
}

type member struct {
	mu     sync.Mutex
	sender Sender
	closed bool
}

func (m *member) send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errMemberClosed
	}
	return m.sender.WriteMessage(TextMessage, data)
}

// close waits for an in-flight write and refuses every later one.
func (m *member) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

type Hub interface {
	Register(username string, sender Sender) error
	Unregister(username string)
	Send(username string, data []byte) error
	Broadcast(msg ChatMessage) int
	Members() int
}

type hub struct {
	mu      sync.RWMutex
	members map[string]*member
	logger  *logrus.Logger
}

func NewHub(logger *logrus.Logger) Hub {
	return &hub{
		members: make(map[string]*member),
		logger:  logger,
	}
}

func (h *hub) Register(username string, sender Sender) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.members[username]; ok {
		return ErrUsernameInUse
	}
	h.members[username] = &member{sender: sender}
	return nil
}

// Unregister removes the member; once it returns nothing writes to its sender again.
func (h *hub) Unregister(username string) {
	h.mu.Lock()
	m, ok := h.members[username]
	delete(h.members, username)
	h.mu.Unlock()
	if ok {
		m.close()
	}
}

// Send writes to a single member, serialized with concurrent broadcasts.
func (h *hub) Send(username string, data []byte) error {
	h.mu.RLock()
	m, ok := h.members[username]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := m.send(data); err != nil && !errors.Is(err, errMemberClosed) {
		return err
	}
	return nil
}

// Broadcast relays msg to every member and returns how many writes succeeded.
func (h *hub) Broadcast(msg ChatMessage) int {
	payload := msg.Encode()

	h.mu.RLock()
	targets := make(map[string]*member, len(h.members))
	for name, m := range h.members {
		targets[name] = m
	}
	h.mu.RUnlock()

	delivered := 0
	for name, m := range targets {
		err := m.send(payload)
		if errors.Is(err, errMemberClosed) {
			continue
		}
		if err != nil {
			h.logger.WithError(err).WithField("username", name).Warn("failed to relay chat message")
			continue
		}
		delivered++
	}
	return delivered
}

func (h *hub) Members() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}
