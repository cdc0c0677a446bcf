package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport interface {
	GetTransport() HandlerTransport
}

type HandlerTransportDTO struct {
	// Public
	HealthHandler            Handler
	VersionHandler           Handler
	LoginHandler             Handler
	ForgottenPasswordHandler Handler
	UpdatePasswordHandler    Handler

	// Users
	CreateUserHandler Handler
	ListUsersHandler  Handler
	GetUserHandler    Handler
	UpdateUserHandler Handler
	DeleteUserHandler Handler
}

func (t *HandlerTransportDTO) GetTransport() HandlerTransport {
	return t
}
