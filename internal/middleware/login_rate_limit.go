package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const loginRateKeyPrefix = "rl:login:"

// LoginRateLimit caps login attempts per contact number (falling back to the
// client IP) within a one minute window, using Redis when available. Without
// Redis, and on Redis errors, it fails open.
func LoginRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 5
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}
		var req struct {
			ContactNumber string `json:"contactNumber"`
		}
		_ = c.BodyParser(&req)
		key := strings.TrimSpace(req.ContactNumber)
		if key == "" {
			key = c.IP()
		}
		cnt, err := cache.Incr(c.UserContext(), loginRateKeyPrefix+key).Result()
		if err != nil {
			return c.Next()
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), loginRateKeyPrefix+key, time.Minute)
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many login attempts, try again later")
		}
		return c.Next()
	}
}
