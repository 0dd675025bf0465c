package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// LoginRateLimit throttles credential endpoints per client IP to slow
// down password guessing.
func LoginRateLimit() gin.HandlerFunc {
	return limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		// 10 attempts burst, refilling one per second; limiter state
		// expires an hour after the last request from that IP.
		return rate.NewLimiter(rate.Every(time.Second), 10), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	})
}
