package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiterMiddleware applies a fixed-window limit per client IP. When
// Redis is unavailable requests pass through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "rate_limit:" + c.ClientIP()

		pipe := rdb.Pipeline()
		incr := pipe.Incr(ctx, key)
		ttlCmd := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("[RATE] Redis error, limiter skipped: %v", err)
			c.Next()
			return
		}

		count := incr.Val()
		ttl := ttlCmd.Val()

		// A key without expiry is either new or left over from a failed
		// EXPIRE; both start a new window.
		if ttl < 0 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Printf("[RATE] Redis expire error: %v", err)
				rdb.Del(ctx, key)
				c.Next()
				return
			}
			ttl = window
		}

		remaining := max(0, int64(limit)-count)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
