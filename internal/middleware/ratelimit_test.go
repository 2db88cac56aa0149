package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		window:        window,
		sweepInterval: 10 * window,
		last:          make(map[string]time.Time),
		now:           now,
	}
}

func limitedRequest(l *rateLimiter, path string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", path, nil)
	l.handle(c)
	return c
}

func TestRateLimiter_OnePerWindowPerRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := time.Now()
	limiter := newTestLimiter(10*time.Second, func() time.Time { return clock })

	detection := "/api/v1/documents/d1/blocks/b1/detection"
	plagiarism := "/api/v1/documents/d1/blocks/b1/plagiarism"

	require.False(t, limitedRequest(limiter, detection).IsAborted())
	require.True(t, limitedRequest(limiter, detection).IsAborted(), "second hit inside the window")

	// a different route is a different budget
	require.False(t, limitedRequest(limiter, plagiarism).IsAborted())

	clock = clock.Add(11 * time.Second)
	require.False(t, limitedRequest(limiter, detection).IsAborted(), "window elapsed, budget refreshed")
}

func TestRateLimiter_ZeroWindowDisables(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := newTestLimiter(0, time.Now)
	path := "/api/v1/documents/d1/blocks/b1/detection"
	for i := 0; i < 3; i++ {
		require.False(t, limitedRequest(limiter, path).IsAborted())
	}
}

func TestRateLimiter_SweepDropsOnlyExpired(t *testing.T) {
	base := time.Now()
	limiter := newTestLimiter(10*time.Second, time.Now)
	limiter.last["expired"] = base.Add(-20 * time.Second)
	limiter.last["active"] = base.Add(-2 * time.Second)

	limiter.mu.Lock()
	limiter.cleanupExpiredLocked(base)
	limiter.mu.Unlock()

	require.NotContains(t, limiter.last, "expired")
	require.Contains(t, limiter.last, "active")
	require.Equal(t, base, limiter.lastSweep)
}
