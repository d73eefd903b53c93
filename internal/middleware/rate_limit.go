package middleware

import (
	"context"
	"time"

	"petsitter-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimitConfig configures the fixed-window limiter.
type RateLimitConfig struct {
	Rdb    *redis.Client // nil disables limiting
	Window time.Duration
	Max    int
}

const rateLimitPrefix = "ratelimit:"

// RateLimit returns a Redis-backed fixed-window limiter keyed by client IP.
// The first hit in a window sets the key's expiry; exceeding Max within the
// window yields 429. Redis failures let the request through (availability over
// strict limiting).
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Rdb == nil || cfg.Max <= 0 {
			return c.Next()
		}

		key := rateLimitPrefix + c.IP()
		ctx := context.Background()

		count, err := cfg.Rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			return c.Next()
		}
		if count == 1 {
			cfg.Rdb.Expire(ctx, key, cfg.Window)
		}
		if count > int64(cfg.Max) {
			return response.Error(c, fiber.StatusTooManyRequests, "ThrottlerException: Too Many Requests")
		}
		return c.Next()
	}
}
