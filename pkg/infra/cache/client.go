package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	defaultOperationTimeout = 500 * time.Millisecond
	breakerName             = "redis"
	breakerFailures         = 5
	breakerOpenTimeout      = 5 * time.Second
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("redis store unavailable")

type Client interface {
	// HGetAll returns every integer field of the hash; an absent key yields an empty map.
	HGetAll(ctx context.Context, key string) (map[string]int64, error)
	// HSet writes the fields and, when ttl > 0, refreshes the key expiration.
	HSet(ctx context.Context, key string, values map[string]int64, ttl time.Duration) error
	// RunScript evaluates a Lua script returning an array of integers.
	RunScript(ctx context.Context, script *redis.Script, keys []string, args ...interface{}) ([]int64, error)
	Ping(ctx context.Context) error
	RedisClient() *redis.Client
	Close() error
}

type Config struct {
	Host             string
	Port             int
	Password         string
	DB               int
	TLS              bool
	PoolSize         int
	DialTimeout      time.Duration
	PoolTimeout      time.Duration
	OperationTimeout time.Duration
}

type client struct {
	redisClient *redis.Client
	breaker     *gobreaker.CircuitBreaker
	opTimeout   time.Duration
	logger      *logrus.Logger
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	options := &redis.Options{
		Addr:        fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:    config.Password,
		DB:          config.DB,
		PoolSize:    config.PoolSize,
		DialTimeout: config.DialTimeout,
		PoolTimeout: config.PoolTimeout,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host":  config.Host,
			"port":  config.Port,
			"error": err.Error(),
		}).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host":      config.Host,
		"port":      config.Port,
		"pool_size": config.PoolSize,
	}).Info("redis connected successfully")

	return NewClientFromRedis(redisClient, config, logger), nil
}

// NewClientFromRedis wraps an existing go-redis client without dialing it.
func NewClientFromRedis(redisClient *redis.Client, config Config, logger *logrus.Logger) Client {
	opTimeout := config.OperationTimeout
	if opTimeout <= 0 {
		opTimeout = defaultOperationTimeout
	}
	c := &client{
		redisClient: redisClient,
		opTimeout:   opTimeout,
		logger:      logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    breakerName,
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("redis circuit breaker state changed")
		},
	})
	return c
}

func (c *client) execute(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
		defer cancel()
		return fn(opCtx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return result, err
}

func (c *client) HGetAll(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := c.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return c.redisClient.HGetAll(ctx, key).Result()
	})
	if err != nil {
		return nil, err
	}
	fields, ok := raw.(map[string]string)
	if !ok {
		return nil, fmt.Errorf("unexpected hgetall result type %T", raw)
	}

	values := make(map[string]int64, len(fields))
	for field, value := range fields {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q of %q is not an integer: %w", field, key, err)
		}
		values[field] = parsed
	}
	return values, nil
}

func (c *client) HSet(ctx context.Context, key string, values map[string]int64, ttl time.Duration) error {
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	args := make([]interface{}, 0, len(values)*2)
	for _, field := range fields {
		args = append(args, field, values[field])
	}

	_, err := c.execute(ctx, func(ctx context.Context) (interface{}, error) {
		pipe := c.redisClient.TxPipeline()
		pipe.HSet(ctx, key, args...)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return pipe.Exec(ctx)
	})
	return err
}

func (c *client) RunScript(ctx context.Context, script *redis.Script, keys []string, args ...interface{}) ([]int64, error) {
	raw, err := c.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return script.Run(ctx, c.redisClient, keys, args...).Result()
	})
	if err != nil {
		return nil, err
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected script result type %T", raw)
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		v, ok := item.(int64)
		if !ok {
			return nil, fmt.Errorf("unexpected script item type %T", item)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *client) Ping(ctx context.Context) error {
	_, err := c.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return c.redisClient.Ping(ctx).Result()
	})
	return err
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}

func (c *client) Close() error {
	return c.redisClient.Close()
}
