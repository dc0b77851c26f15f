package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/HACKWAVE2025/B54/internal/http/response"
)

var errRateLimited = errors.New("too many requests, try again shortly")

// RateLimit caps the shared request rate of the routes it guards. Requests
// over the limit get 429 straight away instead of queueing.
func RateLimit(every time.Duration, burst int) gin.HandlerFunc {
	if every <= 0 || burst <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := rate.NewLimiter(rate.Every(every), burst)
	retryAfter := strconv.Itoa(max(1, int(every/time.Second)))
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", retryAfter)
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", errRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
