package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrStore = errors.New("rate limit store failure")

// BlockedError denies a request before any counter is consulted.
type BlockedError struct {
	Reason Reason
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("rate limiter blocked request: %s", e.Reason)
}

type Result struct {
	Limit     int64
	Remaining int64
	Reset     int64
}

func (r Result) Unlimited() bool {
	return r.Limit <= Unlimited
}

func (r Result) Exceeded() bool {
	return !r.Unlimited() && r.Remaining < 0
}

type Limiter interface {
	Check(ctx context.Context, resolution Resolution) (Result, error)
}

type Option func(*limiter)

func WithTimeProvider(timeProvider func() time.Time) Option {
	return func(l *limiter) {
		if timeProvider != nil {
			l.timeProvider = timeProvider
		}
	}
}

type limiter struct {
	counter       Counter
	windowSeconds int64
	timeProvider  func() time.Time
	logger        *logrus.Logger
}

func NewLimiter(counter Counter, windowSeconds int64, logger *logrus.Logger, opts ...Option) Limiter {
	l := &limiter{
		counter:       counter,
		windowSeconds: windowSeconds,
		timeProvider:  time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *limiter) Check(ctx context.Context, resolution Resolution) (Result, error) {
	switch resolution.Kind {
	case KindNoLimit:
		return Result{Limit: Unlimited}, nil
	case KindBlocked:
		return Result{}, &BlockedError{Reason: resolution.Reason}
	}

	now := l.timeProvider().Unix()
	remaining, reset, err := l.counter.Consume(ctx, resolution.Key, resolution.Limit, now, l.windowSeconds)
	if err != nil {
		l.logger.WithFields(logrus.Fields{
			"key":   resolution.Key,
			"error": err.Error(),
		}).Error("rate limiter store error")
		if errors.Is(err, ErrStore) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return Result{
		Limit:     resolution.Limit,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}
