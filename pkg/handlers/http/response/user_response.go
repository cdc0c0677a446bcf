package response

import (
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Lastname  string    `json:"lastname"`
	Firstname string    `json:"firstname"`
	Username  string    `json:"username"`
	Roles     string    `json:"roles"`
	RateLimit int64     `json:"rate_limit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Lastname:  u.Lastname,
		Firstname: u.Firstname,
		Username:  u.Username,
		Roles:     u.RolesString(),
		RateLimit: u.RateLimit,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserListResponse(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
