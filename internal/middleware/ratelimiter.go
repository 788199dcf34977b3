package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redisClient *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit is a fixed-window counter keyed by the authenticated user, or by client
// IP for anonymous requests. If redis is unavailable the request goes through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.ClientIP()
		if id := UserID(c); id != 0 {
			subject = fmt.Sprintf("user:%d", id)
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, subject)

		pipe := rl.redisClient.TxPipeline()
		incr := pipe.Incr(c, key)
		ttl := pipe.TTL(c, key)
		if _, err := pipe.Exec(c); err != nil {
			logging.From(c).Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		count, remaining := incr.Val(), ttl.Val()

		// No expiry means a first hit or an EXPIRE that never landed; either way
		// the window starts now.
		if remaining < 0 {
			if err := rl.redisClient.Expire(c, key, window).Err(); err != nil {
				logging.From(c).Warn("rate limiter expire failed", "key", key, "error", err)
				rl.redisClient.Del(c, key)
				c.Next()
				return
			}
			remaining = window
		}

		if count > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%.0f", remaining.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", remaining.Seconds()),
			})
			return
		}
		c.Next()
	}
}
