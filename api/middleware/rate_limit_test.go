package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_PerWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	config := PerWindow(3, time.Hour)
	config.Message = "slow down"
	limiter := NewRateLimiter(config)
	limiter.now = func() time.Time { return now }

	e := echo.New()
	handler := limiter.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	call := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/testimonial/submit", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		return handler(e.NewContext(req, httptest.NewRecorder()))
	}

	for range 3 {
		require.NoError(t, call("10.0.0.1"))
	}
	err := call("10.0.0.1")
	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
	assert.Equal(t, "slow down", httpErr.Message)

	assert.NoError(t, call("10.0.0.2"), "other clients keep their own bucket")

	now = now.Add(20 * time.Minute)
	assert.NoError(t, call("10.0.0.1"), "one token refills every twenty minutes")
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(RateLimitConfig{Limit: 1, Burst: 1, TTL: time.Minute})
	limiter.now = func() time.Time { return now }

	limiter.getLimiter("10.0.0.1")
	now = now.Add(2 * time.Minute)
	limiter.getLimiter("10.0.0.2")

	_, ok := limiter.limiters["10.0.0.1"]
	assert.False(t, ok)
	assert.Len(t, limiter.limiters, 1)
}
