package dependency_container

import (
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/app/auth"
	"github.com/NeuralTrust/Gatekeeper/pkg/app/ratelimit"
	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/config"
	domainUser "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	handlers "github.com/NeuralTrust/Gatekeeper/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/Gatekeeper/pkg/handlers/websocket"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/cache"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/database"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/repository"
	infraWebsocket "github.com/NeuralTrust/Gatekeeper/pkg/infra/websocket"
	"github.com/NeuralTrust/Gatekeeper/pkg/server/middleware"
	"github.com/NeuralTrust/Gatekeeper/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Cache                   cache.Client
	JWTManager              jwt.Manager
	Limiter                 ratelimit.Limiter
	UserRepository          domainUser.Repository
	PasswordResetRepository domainUser.PasswordResetRepository
	Hub                     infraWebsocket.Hub
	Semaphore               *infraWebsocket.Semaphore

	HandlerTransport   handlers.HandlerTransport
	WSHandlerTransport wsHandlers.HandlerTransport

	PanicRecoverMiddleware middleware.Middleware
	RequestIDMiddleware    middleware.Middleware
	AccessLogMiddleware    middleware.Middleware
	MetricsMiddleware      middleware.Middleware
	CORSGlobalMiddleware   middleware.Middleware
	TimeoutMiddleware      middleware.Middleware
	IdentityMiddleware     middleware.Middleware
	RateLimiterMiddleware  middleware.Middleware
	AuthGateMiddleware     middleware.Middleware
	AdminGuardMiddleware   middleware.Middleware
	WebSocketMiddleware    middleware.Middleware
	BasicAuthMiddleware    middleware.Middleware
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     *database.DB
	Cache  cache.Client
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	logger := di.Logger

	jwtManager := jwt.NewJwtManager(&cfg.JWT)
	limiter := ratelimit.NewLimiter(
		ratelimit.NewCounter(di.Cache, cfg.Limiter.Atomic),
		cfg.Limiter.WindowSeconds,
		logger,
	)

	// repositories
	userRepository := repository.NewUserRepository(di.DB.DB)
	passwordResetRepository := repository.NewPasswordResetRepository(di.DB.DB)

	// use cases
	authenticator := auth.NewAuthenticator(userRepository, jwtManager, logger)
	userCreator := appUser.NewCreator(userRepository, logger)
	userFinder := appUser.NewFinder(userRepository)
	userUpdater := appUser.NewUpdater(userRepository, logger)
	userDeleter := appUser.NewDeleter(userRepository)
	passwordResetter := appUser.NewPasswordResetter(
		userRepository,
		passwordResetRepository,
		time.Duration(cfg.PasswordReset.ExpirationHours)*time.Hour,
		logger,
	)

	hub := infraWebsocket.NewHub(logger)
	semaphore := infraWebsocket.NewSemaphore(cfg.WebSocket.MaxConnections)

	handlerTransport := &handlers.HandlerTransportDTO{
		HealthHandler:            handlers.NewHealthHandler(),
		VersionHandler:           handlers.NewGetVersionHandler(logger),
		LoginHandler:             handlers.NewLoginHandler(logger, authenticator),
		ForgottenPasswordHandler: handlers.NewForgottenPasswordHandler(logger, passwordResetter),
		UpdatePasswordHandler:    handlers.NewUpdatePasswordHandler(logger, passwordResetter),
		CreateUserHandler:        handlers.NewCreateUserHandler(logger, userCreator),
		ListUsersHandler:         handlers.NewListUsersHandler(logger, userFinder),
		GetUserHandler:           handlers.NewGetUserHandler(logger, userFinder),
		UpdateUserHandler:        handlers.NewUpdateUserHandler(logger, userUpdater),
		DeleteUserHandler:        handlers.NewDeleteUserHandler(logger, userDeleter),
	}

	wsHandlerTransport := &wsHandlers.HandlerTransportDTO{
		ChatHandler: wsHandlers.NewChatHandler(logger, hub, cfg.WebSocket.GreetingInterval),
	}

	return &Container{
		Cache:                   di.Cache,
		JWTManager:              jwtManager,
		Limiter:                 limiter,
		UserRepository:          userRepository,
		PasswordResetRepository: passwordResetRepository,
		Hub:                     hub,
		Semaphore:               semaphore,
		HandlerTransport:        handlerTransport,
		WSHandlerTransport:      wsHandlerTransport,
		PanicRecoverMiddleware:  middleware.NewPanicRecoverMiddleware(logger),
		RequestIDMiddleware:     middleware.NewRequestIDMiddleware(),
		AccessLogMiddleware:     middleware.NewAccessLogMiddleware(logger),
		MetricsMiddleware:       middleware.NewMetricsMiddleware(cfg.Metrics.Service),
		CORSGlobalMiddleware: middleware.NewCORSMiddleware(
			cfg.CORS.AllowOrigins,
			cfg.CORS.AllowMethods,
			cfg.CORS.AllowCredentials,
			cfg.CORS.ExposeHeaders,
			cfg.CORS.MaxAge,
		),
		TimeoutMiddleware:  middleware.NewTimeoutMiddleware(cfg.Server.RequestTimeout),
		IdentityMiddleware: middleware.NewIdentityMiddleware(jwtManager),
		RateLimiterMiddleware: middleware.NewRateLimiterMiddleware(
			logger,
			limiter,
			jwtManager,
			&cfg.Limiter,
			cfg.RateLimitPrefix(),
		),
		AuthGateMiddleware:   middleware.NewAuthGateMiddleware(logger, jwtManager),
		AdminGuardMiddleware: middleware.NewRoleGuardMiddleware(domainUser.RoleAdmin),
		WebSocketMiddleware:  middleware.NewWebsocketMiddleware(logger, semaphore),
		BasicAuthMiddleware:  middleware.NewBasicAuthMiddleware(cfg.Metrics.Username, cfg.Metrics.Password),
	}, nil
}

// GlobalTransport is the pipeline every API request goes through, outermost first.
func (c *Container) GlobalTransport(withMetrics bool) *middleware.Transport {
	var metricsMiddleware middleware.Middleware
	if withMetrics {
		metricsMiddleware = c.MetricsMiddleware
	}
	return middleware.NewTransport(
		c.PanicRecoverMiddleware,
		c.RequestIDMiddleware,
		c.AccessLogMiddleware,
		metricsMiddleware,
		c.CORSGlobalMiddleware,
		c.TimeoutMiddleware,
		c.IdentityMiddleware,
		c.RateLimiterMiddleware,
	)
}

func (c *Container) APIRouter(withMetrics bool) router.ServerRouter {
	return router.NewAPIRouter(router.APIRouterDI{
		MiddlewareTransport: c.GlobalTransport(withMetrics),
		ProtectedTransport:  middleware.NewTransport(c.AuthGateMiddleware),
		AdminGuard:          c.AdminGuardMiddleware,
		WebsocketMiddleware: c.WebSocketMiddleware,
		HandlerTransport:    c.HandlerTransport,
		WsHandlerTransport:  c.WSHandlerTransport,
	})
}

func (c *Container) MetricsRouter() router.ServerRouter {
	return router.NewMetricsRouter(middleware.NewTransport(
		c.PanicRecoverMiddleware,
		c.BasicAuthMiddleware,
	))
}
