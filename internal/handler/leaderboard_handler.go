package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/service"
	"github.com/b4os-dev/classboard-api/internal/utils"
)

// LeaderboardHandler exposes the dashboard read endpoints.
type LeaderboardHandler struct {
	overview    service.OverviewService
	leaderboard service.LeaderboardService
	assignments service.AssignmentService
	logger      zerolog.Logger
}

// NewLeaderboardHandler creates a new handler instance.
func NewLeaderboardHandler(
	overview service.OverviewService,
	leaderboard service.LeaderboardService,
	assignments service.AssignmentService,
	logger zerolog.Logger,
) *LeaderboardHandler {
	return &LeaderboardHandler{
		overview:    overview,
		leaderboard: leaderboard,
		assignments: assignments,
		logger:      logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register attaches the dashboard endpoints.
func (h *LeaderboardHandler) Register(router fiber.Router) {
	router.Get("/leaderboard", h.getOverview)
	router.Get("/leaderboard/entries", h.getLeaderboard)
	router.Get("/assignments", h.getAssignments)
}

func (h *LeaderboardHandler) getOverview(c *fiber.Ctx) error {
	username := userNameFromContext(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing user context")
	}

	overview, err := h.overview.GetOverview(c.Context(), userRoleFromContext(c), username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load dashboard overview")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", overview)
}

func (h *LeaderboardHandler) getLeaderboard(c *fiber.Ctx) error {
	username := userNameFromContext(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing user context")
	}

	entries, err := h.leaderboard.GetLeaderboard(c.Context(), userRoleFromContext(c), username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load leaderboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load leaderboard")
	}

	return utils.SendSuccess(c, "leaderboard retrieved", entries)
}

func (h *LeaderboardHandler) getAssignments(c *fiber.Ctx) error {
	assignments, err := h.assignments.ListAssignments(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load assignments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load assignments")
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}
