package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newLimitedServer(t *testing.T, rl *RateLimiter) *echo.Echo {
	t.Helper()
	t.Cleanup(rl.Stop)

	e := echo.New()
	e.Use(rl.Middleware())
	e.POST("/createCustomToken", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func post(e *echo.Echo, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/createCustomToken", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	e := newLimitedServer(t, NewRateLimiter(rate.Limit(10), 10))

	assert.Equal(t, http.StatusOK, post(e, "").Code)
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	// 1 req/s, burst 1: second request should be rejected
	e := newLimitedServer(t, NewRateLimiter(rate.Limit(1), 1))

	assert.Equal(t, http.StatusOK, post(e, "").Code)

	rec := post(e, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_PerMinuteRetryAfter(t *testing.T) {
	// 6 req/min is one token every 10s
	e := newLimitedServer(t, NewRateLimiterPerMinute(6, 1))

	post(e, "")
	rec := post(e, "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentIPsGetSeparateLimits(t *testing.T) {
	e := newLimitedServer(t, NewRateLimiter(rate.Limit(1), 1))

	assert.Equal(t, http.StatusOK, post(e, "1.2.3.4:1234").Code)
	assert.Equal(t, http.StatusOK, post(e, "5.6.7.8:5678").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(e, "1.2.3.4:1234").Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	defer rl.Stop()

	rl.getLimiter("1.2.3.4")
	rl.getLimiter("5.6.7.8")
	rl.limiters["1.2.3.4"].lastSeen = time.Now().Add(-10 * time.Minute)

	rl.evictIdle(time.Now())

	assert.NotContains(t, rl.limiters, "1.2.3.4")
	assert.Contains(t, rl.limiters, "5.6.7.8")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)

	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
