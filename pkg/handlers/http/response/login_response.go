package response

import (
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/app/auth"
)

type LoginResponse struct {
	ID        string `json:"id"`
	Lastname  string `json:"lastname"`
	Firstname string `json:"firstname"`
	Username  string `json:"username"`
	Roles     string `json:"roles"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func NewLoginResponse(out *auth.LoginOutput) LoginResponse {
	return LoginResponse{
		ID:        out.User.ID.String(),
		Lastname:  out.User.Lastname,
		Firstname: out.User.Firstname,
		Username:  out.User.Username,
		Roles:     out.User.RolesString(),
		Token:     out.Token,
		ExpiresAt: out.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
