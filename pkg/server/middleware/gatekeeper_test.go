package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/app/ratelimit"
	"github.com/NeuralTrust/Gatekeeper/pkg/config"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/cache"
	infraws "github.com/NeuralTrust/Gatekeeper/pkg/infra/websocket"
	"github.com/NeuralTrust/Gatekeeper/pkg/server/middleware"
	"github.com/go-redis/redismock/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	prefix          = "gatekeeper_rl_"
	window    int64 = 60
	startTime int64 = 1740730536
)

type gatekeeper struct {
	app     *fiber.App
	mock    redismock.ClientMock
	manager jwt.Manager
	now     *int64
}

func newGatekeeper(t *testing.T, limiterCfg config.LimiterConfig, address string) *gatekeeper {
	t.Helper()
	logger := newLogger()
	redisClient, mock := redismock.NewClientMock()
	client := cache.NewClientFromRedis(redisClient, cache.Config{OperationTimeout: time.Second}, logger)

	now := startTime
	limiter := ratelimit.NewLimiter(
		ratelimit.NewCounter(client, false),
		limiterCfg.WindowSeconds,
		logger,
		ratelimit.WithTimeProvider(func() time.Time { return time.Unix(now, 0) }),
	)
	manager := newJwtManager()

	app := newApp(logger,
		middleware.NewRequestIDMiddleware(),
		middleware.NewIdentityMiddleware(manager),
		middleware.NewRateLimiterMiddleware(logger, limiter, manager, &limiterCfg, prefix,
			middleware.WithAddressResolver(func(*fiber.Ctx) string { return address }),
		),
	)
	users := app.Group("/users", middleware.NewAuthGateMiddleware(logger, manager).Middleware())
	users.Get("/me", func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(claims.UserID)
	})
	users.Delete("/:id", middleware.NewRoleGuardMiddleware(user.RoleAdmin).Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	return &gatekeeper{app: app, mock: mock, manager: manager, now: &now}
}

func expectRecord(mock redismock.ClientMock, key string, remaining, expiredAt int64) {
	mock.ExpectHGetAll(key).SetVal(map[string]string{
		ratelimit.FieldRemaining: strconv.FormatInt(remaining, 10),
		ratelimit.FieldExpiredAt: strconv.FormatInt(expiredAt, 10),
	})
}

func expectWrite(mock redismock.ClientMock, key string, remaining, expiredAt int64) {
	mock.ExpectTxPipeline()
	mock.ExpectHSet(key, ratelimit.FieldExpiredAt, expiredAt, ratelimit.FieldRemaining, remaining).SetVal(2)
	mock.ExpectExpire(key, time.Duration(window)*time.Second).SetVal(true)
	mock.ExpectTxPipelineExec()
}

func limiterConfig(requests int64, whiteList ...string) config.LimiterConfig {
	return config.LimiterConfig{
		Enabled:           true,
		RequestsPerWindow: requests,
		WindowSeconds:     window,
		WhiteList:         whiteList,
	}
}

func assertNoLimitHeaders(t *testing.T, resp *http.Response) {
	t.Helper()
	assert.Empty(t, resp.Header.Get("X-Ratelimit-Limit"))
	assert.Empty(t, resp.Header.Get("X-Ratelimit-Remaining"))
	assert.Empty(t, resp.Header.Get("X-Ratelimit-Reset"))
	assert.Empty(t, resp.Header.Get("Retry-After"))
}

func TestRateLimiter_UnlimitedDefaultBypassesStore(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(ratelimit.Unlimited), "192.168.1.10")

	for i := 0; i < 5; i++ {
		resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assertNoLimitHeaders(t, resp)
	}
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_UnlimitedUserBypassesStore(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(3), "192.168.1.10")
	token := issueToken(t, gk.manager, "user-1", "USER", ratelimit.Unlimited)

	resp := doRequest(t, gk.app, bearer(httptest.NewRequest(http.MethodGet, "/ping", nil), token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assertNoLimitHeaders(t, resp)
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_WhitelistedAddressBypassesStore(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(3, "127.0.0.1"), "127.0.0.1")

	for i := 0; i < 5; i++ {
		resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assertNoLimitHeaders(t, resp)
	}
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_WindowArithmetic(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(3), "192.168.1.10")
	key := prefix + "192.168.1.10"
	expiredAt := startTime + window

	gk.mock.ExpectHGetAll(key).SetVal(map[string]string{})
	expectWrite(gk.mock, key, 2, expiredAt)
	expectRecord(gk.mock, key, 2, expiredAt)
	expectWrite(gk.mock, key, 1, expiredAt)
	expectRecord(gk.mock, key, 1, expiredAt)
	expectWrite(gk.mock, key, 0, expiredAt)
	expectRecord(gk.mock, key, 0, expiredAt)
	expectWrite(gk.mock, key, -1, expiredAt)

	for i, remaining := range []string{"2", "1", "0"} {
		resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
		assert.Equal(t, "3", resp.Header.Get("X-Ratelimit-Limit"))
		assert.Equal(t, remaining, resp.Header.Get("X-Ratelimit-Remaining"))
		assert.Equal(t, strconv.FormatInt(window-int64(i)*10, 10), resp.Header.Get("X-Ratelimit-Reset"))
		assert.Empty(t, resp.Header.Get("Retry-After"))
		*gk.now += 10
	}

	resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get("X-Ratelimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-Ratelimit-Remaining"))
	retryAfter, err := strconv.ParseInt(resp.Header.Get("Retry-After"), 10, 64)
	require.NoError(t, err)
	assert.Greater(t, retryAfter, int64(0))
	assert.LessOrEqual(t, retryAfter, window)
	assert.Equal(t, resp.Header.Get("Retry-After"), resp.Header.Get("X-Ratelimit-Reset"))
	assert.Equal(t, apperrors.Body{Code: 429, Message: "Too Many Requests"}, decodeError(t, resp))
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_WindowResetAfterExpiry(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(3), "192.168.1.10")
	key := prefix + "192.168.1.10"

	expectRecord(gk.mock, key, -1, startTime-1)
	expectWrite(gk.mock, key, 2, startTime+window)

	resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Ratelimit-Remaining"))
	assert.Equal(t, "60", resp.Header.Get("X-Ratelimit-Reset"))
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_UserKeyedByUserID(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(ratelimit.Unlimited, "127.0.0.1"), "127.0.0.1")
	token := issueToken(t, gk.manager, "user-42", "USER", 5)
	key := prefix + "user-42"

	gk.mock.ExpectHGetAll(key).SetVal(map[string]string{})
	expectWrite(gk.mock, key, 4, startTime+window)

	resp := doRequest(t, gk.app, bearer(httptest.NewRequest(http.MethodGet, "/ping", nil), token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "5", resp.Header.Get("X-Ratelimit-Limit"))
	assert.Equal(t, "4", resp.Header.Get("X-Ratelimit-Remaining"))
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_MissingAddressDenied(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(30), "")

	resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.Body{Code: 401, Message: "Unauthorized"}, decodeError(t, resp))
	assertNoLimitHeaders(t, resp)
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_InvalidTokenDenied(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(ratelimit.Unlimited), "192.168.1.10")

	resp := doRequest(t, gk.app, bearer(httptest.NewRequest(http.MethodGet, "/ping", nil), "not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.Body{Code: 401, Message: "Unauthorized"}, decodeError(t, resp))
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_ZeroEntitlementDenied(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(ratelimit.Unlimited), "192.168.1.10")
	token := issueToken(t, gk.manager, "user-0", "USER", 0)
	key := prefix + "user-0"

	gk.mock.ExpectHGetAll(key).SetVal(map[string]string{})
	expectWrite(gk.mock, key, -1, startTime+window)

	resp := doRequest(t, gk.app, bearer(httptest.NewRequest(http.MethodGet, "/ping", nil), token))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-Ratelimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-Ratelimit-Remaining"))
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestRateLimiter_StoreFailure(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(3), "192.168.1.10")
	gk.mock.ExpectHGetAll(prefix + "192.168.1.10").SetErr(errors.New("dial tcp 10.0.0.1:6379: connection refused"))

	resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, apperrors.Body{Code: 500, Message: "Internal Server Error"}, decodeError(t, resp))
}

func TestRateLimiter_Disabled(t *testing.T) {
	cfg := limiterConfig(3)
	cfg.Enabled = false
	gk := newGatekeeper(t, cfg, "")

	resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, gk.mock.ExpectationsWereMet())
}

func TestAuthGate(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(ratelimit.Unlimited), "192.168.1.10")
	token := issueToken(t, gk.manager, "user-7", "USER", ratelimit.Unlimited)

	resp := doRequest(t, gk.app, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.Body{Code: 401, Message: "Unauthorized"}, decodeError(t, resp))

	resp = doRequest(t, gk.app, bearer(httptest.NewRequest(http.MethodGet, "/users/me", nil), token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-7", string(body))
}

func TestAuthGate_ExpiredToken(t *testing.T) {
	logger := newLogger()
	past := time.Now().Add(-2 * time.Hour)
	issuer := jwt.NewJwtManager(&config.JWTConfig{SecretKey: testSecret, LifetimeHours: 1},
		jwt.WithTimeProvider(func() time.Time { return past }))
	token := issueToken(t, issuer, "user-7", "USER", ratelimit.Unlimited)

	manager := newJwtManager()
	app := newApp(logger, middleware.NewIdentityMiddleware(manager))
	app.Get("/private", middleware.NewAuthGateMiddleware(logger, manager).Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp := doRequest(t, app, bearer(httptest.NewRequest(http.MethodGet, "/private", nil), token))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGuard(t *testing.T) {
	gk := newGatekeeper(t, limiterConfig(ratelimit.Unlimited), "192.168.1.10")

	userToken := issueToken(t, gk.manager, "user-1", "USER", ratelimit.Unlimited)
	resp := doRequest(t, gk.app, bearer(httptest.NewRequest(http.MethodDelete, "/users/abc", nil), userToken))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apperrors.Body{Code: 403, Message: "Forbidden"}, decodeError(t, resp))

	adminToken := issueToken(t, gk.manager, "user-2", "USER,ADMIN", ratelimit.Unlimited)
	resp = doRequest(t, gk.app, bearer(httptest.NewRequest(http.MethodDelete, "/users/abc", nil), adminToken))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRoleGuard_WithoutClaims(t *testing.T) {
	app := newApp(newLogger())
	app.Get("/admin", middleware.NewRoleGuardMiddleware(user.RoleAdmin).Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebsocketMiddleware(t *testing.T) {
	semaphore := infraws.NewSemaphore(1)
	app := newApp(newLogger())
	app.Get("/ws", middleware.NewWebsocketMiddleware(newLogger(), semaphore).Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusSwitchingProtocols)
	})

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
	assert.Equal(t, apperrors.Body{Code: 426, Message: "Upgrade Required"}, decodeError(t, resp))

	resp = doRequest(t, app, websocketUpgrade("/ws"))
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	assert.Equal(t, 1, semaphore.GetCurrentConnections())

	resp = doRequest(t, app, websocketUpgrade("/ws"))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, 1, semaphore.GetCurrentConnections())
}

func TestWebsocketMiddleware_FailedHandshakeReleasesSlot(t *testing.T) {
	semaphore := infraws.NewSemaphore(1)
	app := newApp(newLogger())
	ws := middleware.NewWebsocketMiddleware(newLogger(), semaphore).Middleware()
	app.Get("/refused", ws, func(c *fiber.Ctx) error {
		return fiber.ErrUpgradeRequired
	})
	app.Get("/bad-request", ws, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusBadRequest)
	})

	for i := 0; i < 3; i++ {
		resp := doRequest(t, app, websocketUpgrade("/refused"))
		assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
		assert.Equal(t, 0, semaphore.GetCurrentConnections())

		resp = doRequest(t, app, websocketUpgrade("/bad-request"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, 0, semaphore.GetCurrentConnections())
	}
}

func websocketUpgrade(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	return req
}
