package request

import "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"

type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	if len(r.Password) < user.MinPasswordLength {
		return user.ErrPasswordTooShort
	}
	return nil
}
