// internal/middleware/rate_limit_middleware.go
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"receipt-service/internal/config"
	"receipt-service/internal/utils"
)

// RateLimitMiddleware limits each client IP to RateLimitRequests per
// RateLimitWindow. Idle limiters expire after a few windows.
func RateLimitMiddleware(config *config.SecurityConfig, logger *utils.SecurityLogger) gin.HandlerFunc {
	if !config.RateLimitEnabled || config.RateLimitRequests <= 0 || config.RateLimitWindow <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	every := rate.Every(config.RateLimitWindow / time.Duration(config.RateLimitRequests))
	limiters := cache.New(3*config.RateLimitWindow, 10*config.RateLimitWindow)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		var limiter *rate.Limiter
		if v, ok := limiters.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(every, config.RateLimitRequests)
			if err := limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
				// lost a race with a concurrent request from the same client
				if v, ok := limiters.Get(ip); ok {
					limiter = v.(*rate.Limiter)
				}
			}
		}

		if !limiter.Allow() {
			logger.LogRateLimitViolation(ip, c.Request.URL.Path, config.RateLimitRequests, config.RateLimitWindow)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded", nil)
			c.Abort()
			return
		}

		limiters.SetDefault(ip, limiter)
		c.Next()
	}
}
