package health

import (
	healthsvc "petsitter-backend/internal/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	DB  healthsvc.DBPinger
	Rdb *redis.Client
}

// GET /health
func (h *Handlers) JSON(c *fiber.Ctx) error {
	return c.JSON(healthsvc.Collect(c.Context(), h.DB, h.Rdb))
}
