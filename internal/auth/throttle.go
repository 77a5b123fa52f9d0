package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// LoginThrottle limits login attempts per key (client IP).
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisThrottle is a fixed-window counter shared by every replica.
type RedisThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisThrottle builds a throttle allowing limit attempts per window.
func NewRedisThrottle(client *redis.Client, limit int, window time.Duration) *RedisThrottle {
	if limit <= 0 {
		limit = 10
	}
	return &RedisThrottle{client: client, limit: int64(limit), window: window}
}

// incrWithTTL bumps the counter and sets the window TTL on any key lacking one.
var incrWithTTL = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Allow increments the key's counter and reports whether it is within the limit.
func (t *RedisThrottle) Allow(ctx context.Context, key string) (bool, error) {
	count, err := incrWithTTL.Run(ctx, t.client, []string{throttleKey(key)}, t.window.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return count <= t.limit, nil
}

func throttleKey(key string) string {
	return fmt.Sprintf("login_attempts:%s", key)
}

// MemoryThrottle keeps a token bucket per key in process. Buckets idle for a
// whole window are full again and get evicted.
type MemoryThrottle struct {
	mu        sync.Mutex
	limiters  map[string]*throttleEntry
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryThrottle refills limit tokens per window with the given burst.
func NewMemoryThrottle(limit int, window time.Duration, burst int) *MemoryThrottle {
	if limit <= 0 {
		limit = 10
	}
	if burst <= 0 {
		burst = 1
	}
	refill := window / time.Duration(limit)
	return &MemoryThrottle{
		limiters: make(map[string]*throttleEntry),
		every:    rate.Every(refill),
		burst:    burst,
		idle:     max(window, refill*time.Duration(burst)),
		now:      time.Now,
	}
}

// Allow consumes a token for key.
func (t *MemoryThrottle) Allow(_ context.Context, key string) (bool, error) {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Sub(t.lastSweep) >= t.idle {
		t.sweep(now)
	}
	entry, ok := t.limiters[key]
	if !ok {
		entry = &throttleEntry{limiter: rate.NewLimiter(t.every, t.burst)}
		t.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1), nil
}

func (t *MemoryThrottle) sweep(now time.Time) {
	for key, entry := range t.limiters {
		if now.Sub(entry.lastSeen) >= t.idle {
			delete(t.limiters, key)
		}
	}
	t.lastSweep = now
}

// Len reports how many client buckets are tracked.
func (t *MemoryThrottle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.limiters)
}

// ThrottleLogin rejects requests from a client that exceeded its login budget.
// Throttle backend errors are logged and the request is let through.
func ThrottleLogin(throttle LoginThrottle, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if throttle == nil {
			return c.Next()
		}
		allowed, err := throttle.Allow(c.UserContext(), c.IP())
		if err != nil {
			logger.Warn("login throttle unavailable", zap.Error(err))
			return c.Next()
		}
		if !allowed {
			return apperrors.NewTooManyRequests("Too many login attempts, try again later")
		}
		return c.Next()
	}
}
