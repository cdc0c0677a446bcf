package websocket

import (
	"errors"
	"strings"

	"github.com/valyala/fastjson"
)

var (
	ErrInvalidFrame    = errors.New("chat frame must be a JSON object")
	ErrMissingUsername = errors.New("chat frame username is required")
)

// ChatMessage is the frame exchanged on the chat connection.
type ChatMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ParseChatMessage reads a {"username","message"} frame. Unknown fields are ignored.
// A frame without username is returned along with ErrMissingUsername.
func ParseChatMessage(parser *fastjson.Parser, data []byte) (ChatMessage, error) {
	v, err := parser.ParseBytes(data)
	if err != nil {
		return ChatMessage{}, ErrInvalidFrame
	}
	if v.Type() != fastjson.TypeObject {
		return ChatMessage{}, ErrInvalidFrame
	}
	msg := ChatMessage{
		Username: strings.TrimSpace(string(v.GetStringBytes("username"))),
		Message:  string(v.GetStringBytes("message")),
	}
	if msg.Username == "" {
		return msg, ErrMissingUsername
	}
	return msg, nil
}

// Encode renders the frame with fastjson's arena, escaping both fields.
func (m ChatMessage) Encode() []byte {
	var arena fastjson.Arena
	obj := arena.NewObject()
	obj.Set("username", arena.NewString(m.Username))
	obj.Set("message", arena.NewString(m.Message))
	return obj.MarshalTo(nil)
}
