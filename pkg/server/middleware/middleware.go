package middleware

import "github.com/gofiber/fiber/v2"

// Middleware is one stage of the request pipeline.
type Middleware interface {
	Middleware() fiber.Handler
}

// Transport holds pipeline stages in installation order, outermost first.
type Transport struct {
	Middlewares []Middleware
}

func NewTransport(middlewares ...Middleware) *Transport {
	return &Transport{
		Middlewares: middlewares,
	}
}

func (t *Transport) GetMiddlewares() []interface{} {
	var handlers []interface{}
	for _, middleware := range t.Middlewares {
		if middleware == nil {
			continue
		}
		handlers = append(handlers, middleware.Middleware())
	}
	return handlers
}

func (t *Transport) RegisterMiddleware(middleware Middleware) {
	t.Middlewares = append(t.Middlewares, middleware)
}

// Install attaches every stage to r in order.
func (t *Transport) Install(r fiber.Router) {
	handlers := t.GetMiddlewares()
	if len(handlers) == 0 {
		return
	}
	r.Use(handlers...)
}

// renderChainError hands err to the app error handler so outer stages observe the final status.
func renderChainError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
		_ = c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}
