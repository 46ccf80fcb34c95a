// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file enforces the per-minute request contract with the sliding-window
// limiter from internal/ratelimit. It complements the token-bucket limiter in
// ratelimit.go: the bucket smooths bursts at sub-second granularity, the
// window caps the total over a full minute regardless of pacing.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creatorkit/go-creator-backend/internal/ratelimit"
)

// SlidingWindow returns a Gin middleware that admits at most the limiter's
// configured count of requests per key per window. Rejected requests receive
// a 429 with the standard envelope plus X-RateLimit-Limit and
// X-RateLimit-Remaining headers; rejections do not extend the window.
func SlidingWindow(lim *ratelimit.Limiter, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := lim.Allow(keyFn(c))

		remaining := d.Limit - d.Count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if d.Allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       "rate_limited",
			"message":    "per-minute request limit exceeded",
		})
	}
}
