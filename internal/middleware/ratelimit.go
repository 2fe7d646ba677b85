package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // Header formatting
	"sync"     // Limiter registry
	"time"     // Windows and cleanup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/time/rate"     // Token bucket limiter
)

// RateLimiter keeps one token bucket per client key
type RateLimiter struct {
	limit       rate.Limit
	burst       int
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
}

// NewRateLimiter allows perWindow requests per window for each key, all usable as a burst
func NewRateLimiter(perWindow int, window time.Duration) *RateLimiter {
	if perWindow <= 0 {
		perWindow = 1
	}
	return &RateLimiter{
		limit:       rate.Limit(float64(perWindow) / window.Seconds()),
		burst:       perWindow,
		limiters:    make(map[string]*rate.Limiter),
		lastCleanup: time.Now(),
	}
}

// limiter returns the bucket for key, creating it on first use
func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Drop full buckets every few minutes so idle clients don't accumulate
	if time.Since(rl.lastCleanup) > 5*time.Minute {
		for k, l := range rl.limiters {
			if l.Tokens() >= float64(rl.burst) {
				delete(rl.limiters, k)
			}
		}
		rl.lastCleanup = time.Now()
	}

	l, ok := rl.limiters[key]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// Middleware rejects requests over the limit with 429, keyed by client IP
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		l := rl.limiter(key)
		if !l.Allow() {
			r := l.Reserve()
			delay := r.Delay()
			r.Cancel() // Only peeking at the wait time

			retryAfter := max(int(delay.Seconds()), 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logrus.WithFields(logrus.Fields{
				"client_ip": key,
				"path":      c.FullPath(),
			}).Warn("Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Demasiados intentos, intenta nuevamente más tarde."})
			return
		}
		c.Next()
	}
}
