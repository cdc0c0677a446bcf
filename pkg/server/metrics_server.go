package server

import (
	"fmt"

	"github.com/NeuralTrust/Gatekeeper/pkg/config"
	"github.com/NeuralTrust/Gatekeeper/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	MetricsServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	MetricsServer struct {
		*BaseServer
	}
)

// NewMetricsServer exposes the prometheus registry on its own port.
func NewMetricsServer(di MetricsServerDI) *MetricsServer {
	return &MetricsServer{
		BaseServer: NewBaseServer(di.Config, di.Logger).WithRouters(di.Routers...),
	}
}

func (s *MetricsServer) Run() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.MetricsPort)
	s.Logger.WithField("addr", addr).Info("starting metrics server")
	return s.Router.Listen(addr)
}
