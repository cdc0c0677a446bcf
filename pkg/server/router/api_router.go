package router

import (
	"errors"
	"time"

	_ "github.com/NeuralTrust/Gatekeeper/docs"
	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	handlers "github.com/NeuralTrust/Gatekeeper/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/Gatekeeper/pkg/handlers/websocket"
	"github.com/NeuralTrust/Gatekeeper/pkg/server/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

var (
	ErrInvalidHandlerTransport = errors.New("invalid handler transport")
)

type APIRouterDI struct {
	// MiddlewareTransport is the global pipeline, installed on every route.
	MiddlewareTransport *middleware.Transport
	// ProtectedTransport guards the /api/v1/users group.
	ProtectedTransport  *middleware.Transport
	AdminGuard          middleware.Middleware
	WebsocketMiddleware middleware.Middleware
	HandlerTransport    handlers.HandlerTransport
	WsHandlerTransport  wsHandlers.HandlerTransport
}

type apiRouter struct {
	di APIRouterDI
}

func NewAPIRouter(di APIRouterDI) ServerRouter {
	return &apiRouter{di: di}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	handlerTransport, ok := r.di.HandlerTransport.GetTransport().(*handlers.HandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}
	wsTransport, ok := r.di.WsHandlerTransport.GetTransport().(*wsHandlers.HandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}

	if r.di.MiddlewareTransport != nil {
		r.di.MiddlewareTransport.Install(router)
	}

	router.Get("/health", handlerTransport.HealthHandler.Handle)
	router.Get("/health-check", handlerTransport.HealthHandler.Handle)
	router.Get("/version", handlerTransport.VersionHandler.Handle)
	router.Get("/docs/*", swagger.New(swagger.Config{
		Title: "Gatekeeper API",
	}))

	router.Get(
		common.WebsocketPath,
		r.di.WebsocketMiddleware.Middleware(),
		websocket.New(wsTransport.ChatHandler.Handle, websocket.Config{
			HandshakeTimeout: 15 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		}),
	)

	v1 := router.Group("/api/v1")
	{
		v1.Post("/login", handlerTransport.LoginHandler.Handle)
		v1.Post("/forgotten-password/:email", handlerTransport.ForgottenPasswordHandler.Handle)
		v1.Patch("/update-password/:token", handlerTransport.UpdatePasswordHandler.Handle)

		users := v1.Group("/users")
		{
			if r.di.ProtectedTransport != nil {
				r.di.ProtectedTransport.Install(users)
			}
			users.Post("", handlerTransport.CreateUserHandler.Handle)
			users.Get("", handlerTransport.ListUsersHandler.Handle)
			users.Get("/:id", handlerTransport.GetUserHandler.Handle)
			users.Put("/:id", handlerTransport.UpdateUserHandler.Handle)
			users.Delete("/:id", r.di.AdminGuard.Middleware(), handlerTransport.DeleteUserHandler.Handle)
		}
	}

	return nil
}
