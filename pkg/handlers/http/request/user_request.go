package request

import "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"

// UserRequest is the body of user creation and update.
type UserRequest struct {
	Lastname  string `json:"lastname"`
	Firstname string `json:"firstname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Roles     string `json:"roles,omitempty"`
	RateLimit *int64 `json:"rate_limit,omitempty"`
}

func (r *UserRequest) Validate() error {
	return r.ToInput().Validate()
}

func (r *UserRequest) ToInput() user.Input {
	return user.Input{
		Lastname:  r.Lastname,
		Firstname: r.Firstname,
		Username:  r.Username,
		Password:  r.Password,
		Roles:     r.Roles,
		RateLimit: r.RateLimit,
	}
}
