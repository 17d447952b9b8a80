package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/b4os-dev/classboard-api/internal/config"
	"github.com/b4os-dev/classboard-api/internal/utils"
)

var startedAt = time.Now()

// HealthResponse is the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Uptime      string    `json:"uptime"`
}

// HealthCheck reports liveness; it deliberately touches no dependency so a
// degraded database or cache never flaps the probe.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Uptime:      time.Since(startedAt).Round(time.Second).String(),
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
