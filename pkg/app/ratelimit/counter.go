package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/infra/cache"
	"github.com/go-redis/redis/v8"
)

const (
	FieldRemaining = "remaining"
	FieldExpiredAt = "expiredAt"
)

// Counter performs the read-modify-write of one counter record and returns
// the remaining allowance and the seconds until the window resets.
type Counter interface {
	Consume(ctx context.Context, key string, limit, now, windowSeconds int64) (remaining int64, reset int64, err error)
}

// NewCounter returns the script counter when atomic is set, the read-write counter otherwise.
func NewCounter(client cache.Client, atomic bool) Counter {
	if atomic {
		return NewScriptCounter(client)
	}
	return NewReadWriteCounter(client)
}

// ReadWriteCounter reads the hash and writes it back in two round trips.
// Concurrent requests on the same key may both read the same value.
type ReadWriteCounter struct {
	client cache.Client
}

func NewReadWriteCounter(client cache.Client) *ReadWriteCounter {
	return &ReadWriteCounter{client: client}
}

func (c *ReadWriteCounter) Consume(ctx context.Context, key string, limit, now, windowSeconds int64) (int64, int64, error) {
	remaining := limit - 1
	reset := windowSeconds
	expiredAt := now + windowSeconds

	record, err := c.client.HGetAll(ctx, key)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrStore, err)
	}

	if len(record) > 0 {
		storedExpiredAt, ok := record[FieldExpiredAt]
		if !ok {
			return 0, 0, fmt.Errorf("%w: %s missing on %s", ErrStore, FieldExpiredAt, key)
		}
		reset = storedExpiredAt - now
		if reset <= 0 {
			expiredAt = now + windowSeconds
			reset = windowSeconds
		} else {
			expiredAt = storedExpiredAt
			storedRemaining, ok := record[FieldRemaining]
			if !ok {
				return 0, 0, fmt.Errorf("%w: %s missing on %s", ErrStore, FieldRemaining, key)
			}
			remaining = storedRemaining
			if remaining >= 0 {
				remaining--
			}
		}
	}

	err = c.client.HSet(ctx, key, map[string]int64{
		FieldRemaining: remaining,
		FieldExpiredAt: expiredAt,
	}, time.Duration(windowSeconds)*time.Second)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return remaining, reset, nil
}

// consumeScriptSource applies the same window arithmetic as ReadWriteCounter inside Redis.
// KEYS[1] counter key; ARGV limit, now, window. Returns {remaining, reset}.
const consumeScriptSource = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local window = tonumber(ARGV[3])

local remaining = limit - 1
local reset = window
local expired_at = now + window

if redis.call('EXISTS', key) == 1 then
  local stored = redis.call('HGET', key, 'expiredAt')
  if not stored then
    return redis.error_reply('expiredAt missing on ' .. key)
  end
  reset = tonumber(stored) - now
  if reset <= 0 then
    reset = window
  else
    expired_at = tonumber(stored)
    local stored_remaining = redis.call('HGET', key, 'remaining')
    if not stored_remaining then
      return redis.error_reply('remaining missing on ' .. key)
    end
    remaining = tonumber(stored_remaining)
    if remaining >= 0 then
      remaining = remaining - 1
    end
  end
end

redis.call('HSET', key, 'remaining', remaining, 'expiredAt', expired_at)
redis.call('EXPIRE', key, window)
return {remaining, reset}
`

var consumeScript = redis.NewScript(consumeScriptSource)

// ScriptCounter runs the read-modify-write as a single Lua script so it is atomic per key.
type ScriptCounter struct {
	client cache.Client
}

func NewScriptCounter(client cache.Client) *ScriptCounter {
	return &ScriptCounter{client: client}
}

func (c *ScriptCounter) Consume(ctx context.Context, key string, limit, now, windowSeconds int64) (int64, int64, error) {
	out, err := c.client.RunScript(ctx, consumeScript, []string{key}, limit, now, windowSeconds)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if len(out) != 2 {
		return 0, 0, fmt.Errorf("%w: unexpected script reply of %d items", ErrStore, len(out))
	}
	return out[0], out[1], nil
}

// ConsumeScriptHash is the SHA1 used with EVALSHA.
func ConsumeScriptHash() string {
	return consumeScript.Hash()
}
