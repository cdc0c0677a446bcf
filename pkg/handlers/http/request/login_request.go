package request

import (
	"strings"

	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if !user.ValidEmail(r.Username) {
		return user.ErrInvalidUsername
	}
	if len(r.Password) < user.MinPasswordLength {
		return user.ErrPasswordTooShort
	}
	return nil
}
