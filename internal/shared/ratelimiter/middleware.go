package ratelimiter

import "github.com/gin-gonic/gin"

// Middleware returns a gin middleware that throttles the wrapped route.
// Requests over the limit are delayed rather than rejected, since the trading
// client retries blindly and a 429 would only multiply traffic.
func Middleware(rl RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.WaitIfNeeded()
		c.Next()
	}
}
