package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/config"
	"github.com/NeuralTrust/Gatekeeper/pkg/dependency_container"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/cache"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/database"
	infraLogger "github.com/NeuralTrust/Gatekeeper/pkg/infra/logger"
	_ "github.com/NeuralTrust/Gatekeeper/pkg/infra/migrations"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/prometheus"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/repository"
	"github.com/NeuralTrust/Gatekeeper/pkg/server"
	"github.com/NeuralTrust/Gatekeeper/pkg/server/router"
	"github.com/NeuralTrust/Gatekeeper/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const serveCommandName = "serve"

func main() {
	command := getCommand(os.Args)

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	logger, logCloser, err := infraLogger.NewLogger(cfg.Logs)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logCloser.Close()
	}()

	logger.WithFields(logrus.Fields{
		"version":     version.Version,
		"environment": cfg.Server.Environment,
	}).Info("starting gatekeeper")

	if cfg.Metrics.Enabled {
		prometheus.Initialize(prometheus.MetricsConfig{
			Service:       cfg.Metrics.Service,
			EnableLatency: true,
		})
	}

	db, err := database.NewDB(logger, &cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize database")
	}
	defer func() {
		_ = db.Close()
	}()

	if command == registerCommandName {
		register := &registerCommand{
			creator: appUser.NewCreator(repository.NewUserRepository(db.DB), logger),
			in:      os.Stdin,
			out:     os.Stdout,
		}
		if err := register.Run(context.Background(), os.Args[2:]); err != nil {
			logger.WithError(err).Error("failed to register administrator")
			_ = db.Close()
			_ = logCloser.Close()
			os.Exit(1)
		}
		return
	}

	cacheClient, err := cache.NewClient(cache.Config{
		Host:             cfg.Redis.Host,
		Port:             cfg.Redis.Port,
		Password:         cfg.Redis.Password,
		DB:               cfg.Redis.DB,
		TLS:              cfg.Redis.TLS,
		PoolSize:         cfg.Redis.PoolSize,
		DialTimeout:      cfg.Redis.ConnectionTimeout,
		PoolTimeout:      cfg.Redis.PoolTimeout,
		OperationTimeout: cfg.Redis.OperationTimeout,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize redis")
	}
	defer func() {
		_ = cacheClient.Close()
	}()

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
		DB:     db,
		Cache:  cacheClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize dependencies")
	}

	servers := []server.Server{
		server.NewAPIServer(server.APIServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{container.APIRouter(cfg.Metrics.Enabled)},
		}),
	}
	if cfg.Metrics.Enabled {
		servers = append(servers, server.NewMetricsServer(server.MetricsServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{container.MetricsRouter()},
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(srv.Run)
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gatekeeper")
		var shutdownErr error
		for _, srv := range servers {
			shutdownErr = errors.Join(shutdownErr, srv.Shutdown())
		}
		return shutdownErr
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("gatekeeper stopped with error")
		return
	}
	logger.Info("gatekeeper stopped")
}

func getCommand(args []string) string {
	if len(args) > 1 && args[1] == registerCommandName {
		return registerCommandName
	}
	return serveCommandName
}
