package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

func TestMemoryThrottle_BurstThenDeny(t *testing.T) {
	throttle := NewMemoryThrottle(1, time.Hour, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := throttle.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := throttle.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = throttle.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "keys are limited independently")
}

func TestMemoryThrottle_EvictsIdleClients(t *testing.T) {
	throttle := NewMemoryThrottle(1, time.Minute, 1)
	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	throttle.now = func() time.Time { return clock }
	ctx := context.Background()

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		ok, err := throttle.Allow(ctx, ip)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 3, throttle.Len())

	clock = clock.Add(30 * time.Second)
	ok, err := throttle.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "bucket still empty mid-window")

	clock = clock.Add(time.Minute)
	ok, err = throttle.Allow(ctx, "10.0.0.4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, throttle.Len(), "idle buckets are dropped")

	ok, err = throttle.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)
}

type failingThrottle struct{}

func (failingThrottle) Allow(context.Context, string) (bool, error) {
	return false, errors.New("backend down")
}

func throttledApp(throttle LoginThrottle) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	app.Post("/login", ThrottleLogin(throttle, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestThrottleLogin(t *testing.T) {
	app := throttledApp(NewMemoryThrottle(1, time.Hour, 1))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestThrottleLogin_FailsOpen(t *testing.T) {
	app := throttledApp(failingThrottle{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRedisThrottle(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	throttle := NewRedisThrottle(client, 2, time.Minute)
	key := uuid.NewString()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := throttle.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := throttle.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.PTTL(ctx, throttleKey(key)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestRedisThrottle_RepairsCounterWithoutTTL(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	key := uuid.NewString()
	// A counter left over with no expiry must not block the client forever.
	require.NoError(t, client.Set(ctx, throttleKey(key), 50, 0).Err())
	t.Cleanup(func() { client.Del(ctx, throttleKey(key)) })

	throttle := NewRedisThrottle(client, 2, time.Minute)
	ok, err := throttle.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.PTTL(ctx, throttleKey(key)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
	assert.LessOrEqual(t, ttl, time.Minute)
}
