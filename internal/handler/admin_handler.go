package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/service"
	"github.com/b4os-dev/classboard-api/internal/utils"
)

// AdminHandler exposes administrative maintenance endpoints.
type AdminHandler struct {
	snapshots service.SnapshotService
	logger    zerolog.Logger
}

// NewAdminHandler creates a new handler instance.
func NewAdminHandler(snapshots service.SnapshotService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		snapshots: snapshots,
		logger:    logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the admin endpoints.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Post("/leaderboard/refresh", h.refreshLeaderboard)
}

func (h *AdminHandler) refreshLeaderboard(c *fiber.Ctx) error {
	count, err := h.snapshots.RefreshLeaderboard(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to refresh leaderboard snapshot")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to refresh leaderboard snapshot")
	}

	return utils.SendSuccess(c, "leaderboard snapshot refreshed", fiber.Map{"students": count})
}
