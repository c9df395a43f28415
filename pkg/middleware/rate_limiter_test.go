package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	// 120 requests per minute (2 per second) with burst of 1
	rl := NewRateLimiter(120, 1)

	limiter := rl.GetLimiter("192.168.1.1")

	assert.True(t, limiter.Allow(), "first request should be allowed")
	assert.False(t, limiter.Allow(), "second request should exhaust the burst")

	// 2 req/sec means one token every 500ms
	time.Sleep(600 * time.Millisecond)

	assert.True(t, limiter.Allow(), "request after refill should be allowed")
}

func TestRateLimiterDifferentIPs(t *testing.T) {
	rl := NewRateLimiter(2, 1)

	limiter1 := rl.GetLimiter("192.168.1.1")
	limiter2 := rl.GetLimiter("192.168.1.2")

	assert.True(t, limiter1.Allow())
	assert.True(t, limiter2.Allow())

	assert.False(t, limiter1.Allow())
	assert.False(t, limiter2.Allow())
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(2, 1)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	}
	wrapped := rl.RateLimitMiddleware()(handler)

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview", nil)
	req1.RemoteAddr = "192.168.1.1:12345"
	rec1 := httptest.NewRecorder()

	err := wrapped(e.NewContext(req1, rec1))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec1.Code)

	// same IP, burst spent
	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview", nil)
	req2.RemoteAddr = "192.168.1.1:12346"
	rec2 := httptest.NewRecorder()

	err = wrapped(e.NewContext(req2, rec2))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.Contains(t, rec2.Body.String(), "rate_limit_exceeded")

	// different IP still passes
	req3 := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview", nil)
	req3.RemoteAddr = "192.168.1.2:12345"
	rec3 := httptest.NewRecorder()

	err = wrapped(e.NewContext(req3, rec3))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec3.Code)
}

func TestRateLimiterBurstBehavior(t *testing.T) {
	// 60 req/min (1 req/sec) with burst of 10
	rl := NewRateLimiter(60, 10)
	limiter := rl.GetLimiter("192.168.1.1")

	allowed := 0
	for i := 0; i < 15; i++ {
		if limiter.Allow() {
			allowed++
		}
	}
	assert.Equal(t, 10, allowed, "should allow exactly the burst size")

	time.Sleep(1100 * time.Millisecond)

	assert.True(t, limiter.Allow(), "should allow one request after a token refill")
}
