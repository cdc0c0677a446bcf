package database

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/config"
	"github.com/sirupsen/logrus"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB represents the database connection
type DB struct {
	logger *logrus.Logger
	*gorm.DB
}

const (
	defaultMaxOpenConns    = 50
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 60 * time.Second
	defaultConnectTimeout  = 30 * time.Second
)

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// NewDB creates a new database connection
func NewDB(logger *logrus.Logger, cfg *config.DatabaseConfig) (*DB, error) {
	connectTimeout := orDuration(cfg.ConnectTimeout, defaultConnectTimeout)
	logger.WithFields(logrus.Fields{
		"host":    cfg.Host,
		"port":    cfg.Port,
		"db":      cfg.DBName,
		"user":    cfg.User,
		"sslmode": cfg.SSLMode,
		"timeout": connectTimeout.String(),
	}).Info("connecting to database")

	gormDB, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql DB: %w", err)
	}
	maxOpen := orInt(cfg.MaxOpenConns, defaultMaxOpenConns)
	maxIdle := orInt(cfg.MaxIdleConns, defaultMaxIdleConns)
	lifetime := orDuration(cfg.ConnMaxLifetime, defaultConnMaxLifetime)
	idleTime := orDuration(cfg.ConnMaxIdleTime, defaultConnMaxIdleTime)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)
	sqlDB.SetConnMaxIdleTime(idleTime)
	logger.WithFields(logrus.Fields{
		"max_open_conns":     maxOpen,
		"max_idle_conns":     maxIdle,
		"conn_max_lifetime":  lifetime.String(),
		"conn_max_idle_time": idleTime.String(),
	}).Info("configured database connection pool")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	db := &DB{logger: logger, DB: gormDB}
	if !cfg.AutoMigration {
		logger.Info("automatic migrations disabled")
		return db, nil
	}

	logger.WithField("timeout", connectTimeout.String()).Info("applying database migrations")
	migCtx, migCancel := context.WithTimeout(context.Background(), connectTimeout)
	defer migCancel()
	applied, err := NewMigrationsManager(db.DB, logger).ApplyPending(migCtx)
	if err != nil {
		logger.WithError(err).Error("failed to apply database migrations")
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	logger.WithField("applied", len(applied)).Info("database migrations successfully applied")

	return db, nil
}

func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func orDuration(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
