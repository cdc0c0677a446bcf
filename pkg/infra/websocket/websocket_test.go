package websocket_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	infra "github.com/NeuralTrust/Gatekeeper/pkg/infra/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (s *recordingSender) WriteMessage(_ int, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, string(data))
	return nil
}

func (s *recordingSender) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

func newHub() infra.Hub {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return infra.NewHub(logger)
}

func TestSemaphore(t *testing.T) {
	s := infra.NewSemaphore(2)
	assert.True(t, s.Acquire())
	assert.True(t, s.Acquire())
	assert.False(t, s.Acquire())
	assert.Equal(t, 2, s.GetCurrentConnections())

	s.Release()
	assert.Equal(t, 1, s.GetCurrentConnections())
	assert.True(t, s.Acquire())

	s.Release()
	s.Release()
	s.Release()
	assert.Equal(t, 0, s.GetCurrentConnections())
	assert.Equal(t, 2, s.Capacity())
}

func TestSemaphore_SlotReleasesOnce(t *testing.T) {
	s := infra.NewSemaphore(2)
	first, ok := s.AcquireSlot()
	require.True(t, ok)
	second, ok := s.AcquireSlot()
	require.True(t, ok)
	_, ok = s.AcquireSlot()
	assert.False(t, ok)

	first.Release()
	first.Release()
	assert.Equal(t, 1, s.GetCurrentConnections())

	second.Release()
	assert.Equal(t, 0, s.GetCurrentConnections())
}

func TestHub_RegisterRefusesDuplicateUsername(t *testing.T) {
	h := newHub()
	require.NoError(t, h.Register("alice", &recordingSender{}))
	assert.ErrorIs(t, h.Register("alice", &recordingSender{}), infra.ErrUsernameInUse)
	assert.Equal(t, 1, h.Members())

	h.Unregister("alice")
	assert.Equal(t, 0, h.Members())
	assert.NoError(t, h.Register("alice", &recordingSender{}))
}

func TestHub_Broadcast(t *testing.T) {
	h := newHub()
	alice := &recordingSender{}
	bob := &recordingSender{}
	broken := &recordingSender{err: errors.New("closed")}
	require.NoError(t, h.Register("alice", alice))
	require.NoError(t, h.Register("bob", bob))
	require.NoError(t, h.Register("carol", broken))

	delivered := h.Broadcast(infra.ChatMessage{Username: "alice", Message: "hello \"team\""})
	assert.Equal(t, 2, delivered)

	want := `{"username":"alice","message":"hello \"team\""}`
	assert.Equal(t, []string{want}, alice.received())
	assert.Equal(t, []string{want}, bob.received())
}

func TestHub_SendToUnknownMemberIsNoop(t *testing.T) {
	h := newHub()
	assert.NoError(t, h.Send("ghost", []byte("hi")))
}

type blockingSender struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingSender) WriteMessage(_ int, _ []byte) error {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	return nil
}

type leavingSender struct {
	left atomic.Bool
	late atomic.Int32
}

func (s *leavingSender) WriteMessage(_ int, _ []byte) error {
	if s.left.Load() {
		s.late.Add(1)
	}
	return nil
}

func TestHub_NoWriteAfterUnregister(t *testing.T) {
	for i := 0; i < 20; i++ {
		h := newHub()
		slow := &blockingSender{entered: make(chan struct{}), release: make(chan struct{})}
		leaver := &leavingSender{}
		require.NoError(t, h.Register("slow", slow))
		require.NoError(t, h.Register("leaver", leaver))

		done := make(chan int)
		go func() {
			done <- h.Broadcast(infra.ChatMessage{Username: "slow", Message: "hi"})
		}()

		<-slow.entered
		h.Unregister("leaver")
		leaver.left.Store(true)
		close(slow.release)

		delivered := <-done
		assert.Equal(t, int32(0), leaver.late.Load())
		assert.GreaterOrEqual(t, delivered, 1)
		assert.NoError(t, h.Send("leaver", []byte("bye")))
		assert.Equal(t, int32(0), leaver.late.Load())
	}
}

func TestParseChatMessage(t *testing.T) {
	var parser fastjson.Parser

	msg, err := infra.ParseChatMessage(&parser, []byte(`{"username":" bob ","message":"hey","extra":1}`))
	require.NoError(t, err)
	assert.Equal(t, infra.ChatMessage{Username: "bob", Message: "hey"}, msg)

	_, err = infra.ParseChatMessage(&parser, []byte(`not json`))
	assert.ErrorIs(t, err, infra.ErrInvalidFrame)

	_, err = infra.ParseChatMessage(&parser, []byte(`["bob"]`))
	assert.ErrorIs(t, err, infra.ErrInvalidFrame)

	msg, err = infra.ParseChatMessage(&parser, []byte(`{"message":"hey"}`))
	assert.ErrorIs(t, err, infra.ErrMissingUsername)
	assert.Equal(t, "hey", msg.Message)
}
