package router

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/common"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/prometheus"
	"github.com/NeuralTrust/Gatekeeper/pkg/server/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type metricsRouter struct {
	middlewareTransport *middleware.Transport
}

// NewMetricsRouter serves the prometheus registry behind the given stages (basic auth).
func NewMetricsRouter(middlewareTransport *middleware.Transport) ServerRouter {
	return &metricsRouter{middlewareTransport: middlewareTransport}
}

func (r *metricsRouter) BuildRoutes(router *fiber.App) error {
	if r.middlewareTransport != nil {
		r.middlewareTransport.Install(router)
	}
	handler := fasthttpadaptor.NewFastHTTPHandler(prometheus.Handler())
	router.Get(common.MetricsPath, func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})
	return nil
}
