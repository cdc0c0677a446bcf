package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const rateLimitKeySuffix = "rl_"

var (
	ErrMissingJWTSecret     = errors.New("jwt secret key is required")
	ErrInvalidJWTLifetime   = errors.New("jwt lifetime must be greater than zero")
	ErrInvalidLimiterWindow = errors.New("limiter window must be greater than zero")
	ErrInvalidLimiterLimit  = errors.New("limiter requests per window must be -1 or greater")
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	CORS          CORSConfig          `mapstructure:"cors"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Limiter       LimiterConfig       `mapstructure:"limiter"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Logs          LogsConfig          `mapstructure:"logs"`
	PasswordReset PasswordResetConfig `mapstructure:"password_reset"`
	WebSocket     WebSocketConfig     `mapstructure:"websocket"`
}

type ServerConfig struct {
	Environment    string        `mapstructure:"environment"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	MetricsPort    int           `mapstructure:"metrics_port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	BodyLimit      int           `mapstructure:"body_limit"`
}

type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	LifetimeHours int64  `mapstructure:"lifetime_hours"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	MaxAge           string   `mapstructure:"max_age"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	AutoMigration   bool          `mapstructure:"auto_migration"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	Password          string        `mapstructure:"password"`
	DB                int           `mapstructure:"db"`
	TLS               bool          `mapstructure:"tls"`
	Prefix            string        `mapstructure:"prefix"`
	PoolSize          int           `mapstructure:"pool_size"`
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout"`
	PoolTimeout       time.Duration `mapstructure:"pool_timeout"`
	OperationTimeout  time.Duration `mapstructure:"operation_timeout"`
}

type LimiterConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	RequestsPerWindow int64    `mapstructure:"requests_per_window"`
	WindowSeconds     int64    `mapstructure:"window_seconds"`
	WhiteList         []string `mapstructure:"white_list"`
	Atomic            bool     `mapstructure:"atomic"`
}

type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Service  string `mapstructure:"service"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type LogsConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
	File  string `mapstructure:"file"`
}

type PasswordResetConfig struct {
	ExpirationHours int64 `mapstructure:"expiration_hours"`
}

type WebSocketConfig struct {
	MaxConnections   int           `mapstructure:"max_connections"`
	GreetingInterval time.Duration `mapstructure:"greeting_interval"`
}

var globalConfig Config

// Load reads config.yaml from configPath (when present) and overlays the
// environment. It must be called once at startup.
func Load(configPath string) error {
	v := viper.New()
	cfg, err := load(v, configPath)
	if err != nil {
		return err
	}
	globalConfig = *cfg
	return nil
}

// LoadFrom builds a Config from an explicit viper instance. Useful in tests.
func LoadFrom(v *viper.Viper) (*Config, error) {
	return load(v, "")
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	setDefaultValues(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, fmt.Errorf("error reading config file config.yaml: %w", err)
			}
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.body_limit", 4*1024*1024)

	v.SetDefault("jwt.secret_key", "")
	v.SetDefault("jwt.lifetime_hours", 24)

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.expose_headers", []string{})
	v.SetDefault("cors.max_age", "3600")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "gatekeeper")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.auto_migration", true)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "60s")
	v.SetDefault("database.connect_timeout", "30s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)
	v.SetDefault("redis.prefix", "gatekeeper_")
	v.SetDefault("redis.pool_size", 50)
	v.SetDefault("redis.connection_timeout", "2s")
	v.SetDefault("redis.pool_timeout", "1s")
	v.SetDefault("redis.operation_timeout", "500ms")

	v.SetDefault("limiter.enabled", true)
	v.SetDefault("limiter.requests_per_window", 60)
	v.SetDefault("limiter.window_seconds", 60)
	v.SetDefault("limiter.white_list", []string{})
	v.SetDefault("limiter.atomic", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.service", "gatekeeper")
	v.SetDefault("metrics.username", "")
	v.SetDefault("metrics.password", "")

	v.SetDefault("logs.level", "info")
	v.SetDefault("logs.path", "")
	v.SetDefault("logs.file", "gatekeeper.log")

	v.SetDefault("password_reset.expiration_hours", 1)

	v.SetDefault("websocket.max_connections", 1000)
	v.SetDefault("websocket.greeting_interval", "2s")
}

func (c *Config) normalize() {
	c.CORS.AllowOrigins = trimAll(c.CORS.AllowOrigins)
	c.CORS.AllowMethods = trimAll(c.CORS.AllowMethods)
	c.CORS.ExposeHeaders = trimAll(c.CORS.ExposeHeaders)
	c.Limiter.WhiteList = trimAll(c.Limiter.WhiteList)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.SecretKey) == "" {
		return ErrMissingJWTSecret
	}
	if c.JWT.LifetimeHours <= 0 {
		return ErrInvalidJWTLifetime
	}
	if c.Limiter.WindowSeconds <= 0 {
		return ErrInvalidLimiterWindow
	}
	if c.Limiter.RequestsPerWindow < -1 {
		return ErrInvalidLimiterLimit
	}
	return nil
}

// RateLimitPrefix is the namespace of every counter key written by the limiter.
func (c *Config) RateLimitPrefix() string {
	return c.Redis.Prefix + rateLimitKeySuffix
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func GetConfig() *Config {
	return &globalConfig
}
