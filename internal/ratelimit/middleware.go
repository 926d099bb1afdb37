package ratelimit

import (
	"net/http"
	"strconv"

	"jobmarket_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	MessageGlobal = "Too many requests"
	MessageAuth   = "Too many authentication attempts. Please try again later."
)

// Middleware limits by client IP. Store failures let the request through.
func Middleware(store Store, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := store.Take(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.CtxWithError(c.Request.Context(), "Rate limiter unavailable", err)
			c.Next()
			return
		}
		if decision.Allowed {
			c.Next()
			return
		}

		secs := retryAfterSeconds(decision.RetryAfter)
		c.Header("Retry-After", strconv.Itoa(secs))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"message":    message,
			"retryAfter": secs,
		})
	}
}
