// README: Redis fixed-window rate limit for the generate endpoint.
package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit caps requests per client IP per minute using a fixed window
// counter in Redis (INCR + EXPIRE, key carries the window). A nil client
// or non-positive limit disables the middleware. Redis being down fails
// open: the LLM quota guard still applies downstream.
func RateLimit(client *redis.Client, perMinute int) gin.HandlerFunc {
	if client == nil || perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:generate:%s:%d", c.ClientIP(), window)

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Printf("[ratelimit] redis error, failing open: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, time.Minute)
		}
		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Zbyt wiele zapytań. Spróbuj ponownie za chwilę.",
			})
			return
		}
		c.Next()
	}
}
