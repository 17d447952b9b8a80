package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/service"
	"github.com/b4os-dev/classboard-api/internal/utils"
)

// StudentHandler exposes per-student read endpoints: grade breakdown,
// reviewer records, review comments and fork metadata.
type StudentHandler struct {
	leaderboard service.LeaderboardService
	reviews     service.ReviewService
	repoMeta    service.RepoMetadataService
	logger      zerolog.Logger
}

// NewStudentHandler creates a new handler instance.
func NewStudentHandler(
	leaderboard service.LeaderboardService,
	reviews service.ReviewService,
	repoMeta service.RepoMetadataService,
	logger zerolog.Logger,
) *StudentHandler {
	return &StudentHandler{
		leaderboard: leaderboard,
		reviews:     reviews,
		repoMeta:    repoMeta,
		logger:      logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the per-student endpoints.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/:username/breakdown", h.getBreakdown)
	router.Get("/:username/reviewers", h.getReviewers)
	router.Get("/:username/review-summary", h.getReviewSummary)
	router.Get("/:username/comments", h.getComments)
	router.Get("/:username/repository", h.getRepository)
}

func (h *StudentHandler) getBreakdown(c *fiber.Ctx) error {
	username := c.Params("username")
	if !canActFor(c, username) {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	breakdown, err := h.leaderboard.GetStudentBreakdown(c.Context(), username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load grade breakdown")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load grade breakdown")
	}

	return utils.SendSuccess(c, "grade breakdown retrieved", breakdown)
}

func (h *StudentHandler) getReviewers(c *fiber.Ctx) error {
	username := c.Params("username")
	if !canActFor(c, username) {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	reviewers, err := h.reviews.ListForStudent(c.Context(), username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load reviewers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load reviewers")
	}

	return utils.SendSuccess(c, "reviewers retrieved", reviewers)
}

func (h *StudentHandler) getReviewSummary(c *fiber.Ctx) error {
	username := c.Params("username")
	if !canActFor(c, username) {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	summary, err := h.reviews.StudentSummary(c.Context(), username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load review summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load review summary")
	}

	return utils.SendSuccess(c, "review summary retrieved", summary)
}

func (h *StudentHandler) getComments(c *fiber.Ctx) error {
	username := c.Params("username")
	if !canActFor(c, username) {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	var assignment *string
	if value := strings.TrimSpace(c.Query("assignment")); value != "" {
		assignment = &value
	}

	comments, err := h.reviews.ListComments(c.Context(), username, assignment)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load review comments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load review comments")
	}

	return utils.SendSuccess(c, "review comments retrieved", comments)
}

func (h *StudentHandler) getRepository(c *fiber.Ctx) error {
	username := c.Params("username")
	if !canActFor(c, username) {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	assignment := strings.TrimSpace(c.Query("assignment"))
	if assignment == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "assignment query parameter is required")
	}

	info, err := h.repoMeta.GetStudentRepository(c.Context(), assignment, username)
	if err != nil {
		if errors.Is(err, service.ErrRepositoryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student repository not found")
		}
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load repository metadata")
		return utils.SendError(c, fiber.StatusBadGateway, "failed to load repository metadata")
	}

	return utils.SendSuccess(c, "repository metadata retrieved", info)
}
