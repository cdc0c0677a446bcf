package response

import (
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
)

type PasswordResetResponse struct {
	Token     string `json:"token"`
	ExpiredAt string `json:"expired_at"`
}

func NewPasswordResetResponse(reset *user.PasswordReset) PasswordResetResponse {
	return PasswordResetResponse{
		Token:     reset.Token.String(),
		ExpiredAt: reset.ExpiredAt.UTC().Format(time.RFC3339),
	}
}
