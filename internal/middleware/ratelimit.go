package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/response"
	"github.com/gin-gonic/gin"
)

// SubmitLimiter implements a fixed-window rate limit on answer submissions,
// keyed by team. Windows are per process; a restart clears them, which is
// acceptable for a short-lived competition.
type SubmitLimiter struct {
	mu      sync.Mutex
	windows map[string]*submitWindow
	limit   int
	window  time.Duration
}

type submitWindow struct {
	count   int
	startAt time.Time
}

// NewSubmitLimiter creates a SubmitLimiter (e.g., 10 submissions per minute).
func NewSubmitLimiter(limit int, window time.Duration) *SubmitLimiter {
	sl := &SubmitLimiter{
		windows: make(map[string]*submitWindow),
		limit:   limit,
		window:  window,
	}

	// Cleanup expired windows every minute.
	go func() {
		for range time.Tick(time.Minute) {
			sl.cleanup()
		}
	}()

	return sl
}

// Middleware returns a Gin middleware that rate-limits requests by team ID.
// Must run after RequireTeamJWT; falls back to client IP when no claims are
// present.
func (sl *SubmitLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if claims := GetClaims(c); claims != nil && claims.TeamID != "" {
			key = claims.TeamID
		}

		if !sl.allow(key, time.Now()) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}

func (sl *SubmitLimiter) allow(key string, now time.Time) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	w, exists := sl.windows[key]
	if !exists || now.Sub(w.startAt) >= sl.window {
		sl.windows[key] = &submitWindow{count: 1, startAt: now}
		return true
	}

	if w.count >= sl.limit {
		return false
	}
	w.count++
	return true
}

func (sl *SubmitLimiter) cleanup() {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	for key, w := range sl.windows {
		if time.Since(w.startAt) > 3*sl.window {
			delete(sl.windows, key)
		}
	}
}
