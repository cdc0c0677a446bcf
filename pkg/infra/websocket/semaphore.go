package websocket

import (
	"sync"

	"github.com/NeuralTrust/Gatekeeper/pkg/infra/prometheus"
)

// Semaphore bounds the number of open chat connections.
type Semaphore struct {
	connections chan struct{}
}

func NewSemaphore(maxConnections int) *Semaphore {
	if maxConnections <= 0 {
		maxConnections = 1
	}
	return &Semaphore{
		connections: make(chan struct{}, maxConnections),
	}
}

func (s *Semaphore) Acquire() bool {
	select {
	case s.connections <- struct{}{}:
		prometheus.WebsocketConnections.Inc()
		return true
	default:
		return false
	}
}

// AcquireSlot takes a connection slot that can be handed from the upgrade
// middleware to the connection handler and released by either of them.
func (s *Semaphore) AcquireSlot() (*Slot, bool) {
	if !s.Acquire() {
		return nil, false
	}
	return &Slot{semaphore: s}, true
}

func (s *Semaphore) Release() {
	select {
	case <-s.connections:
		prometheus.WebsocketConnections.Dec()
	default:
	}
}

func (s *Semaphore) GetCurrentConnections() int {
	return len(s.connections)
}

func (s *Semaphore) Capacity() int {
	return cap(s.connections)
}

// Slot is one held connection; Release is safe to call more than once.
type Slot struct {
	once      sync.Once
	semaphore *Semaphore
}

func (s *Slot) Release() {
	s.once.Do(s.semaphore.Release)
}
