package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/internal/service"
	"github.com/b4os-dev/classboard-api/internal/utils"
)

// ReviewHandler wires the peer-review write endpoints. Routes registered
// here are expected to sit behind privileged-role middleware.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new handler instance.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("component", "review_handler").Logger(),
	}
}

// Register attaches the review workflow endpoints.
func (h *ReviewHandler) Register(router fiber.Router) {
	router.Post("/", h.assignReviewer)
	router.Patch("/:id/status", h.updateStatus)
	router.Patch("/:id/score", h.updateScore)
	router.Delete("/:id", h.removeReviewer)
	router.Post("/comments", h.addComment)
}

func (h *ReviewHandler) assignReviewer(c *fiber.Ctx) error {
	var payload dto.AssignReviewerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	review, err := h.service.AssignReviewer(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to assign reviewer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to assign reviewer")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "reviewer assigned", review)
}

func (h *ReviewHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.UpdateReviewStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	review, err := h.service.UpdateStatus(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "review assignment not found")
		case errors.Is(err, service.ErrInvalidReviewStatus), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("review_id", id).Msg("failed to update review status")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update review status")
		}
	}

	return utils.SendSuccess(c, "review status updated", review)
}

func (h *ReviewHandler) updateScore(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.UpdateQualityScoreRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	review, err := h.service.UpdateQualityScore(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "review assignment not found")
		case errors.Is(err, service.ErrScoreOutOfRange), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("review_id", id).Msg("failed to update quality score")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update quality score")
		}
	}

	return utils.SendSuccess(c, "quality score updated", review)
}

func (h *ReviewHandler) removeReviewer(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.RemoveReviewer(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "review assignment not found")
		}
		h.logger.Error().Err(err).Uint("review_id", id).Msg("failed to remove reviewer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove reviewer")
	}

	return utils.SendSuccess(c, "reviewer removed", nil)
}

func (h *ReviewHandler) addComment(c *fiber.Ctx) error {
	var payload dto.AddReviewCommentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	comment, err := h.service.AddComment(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to add review comment")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to add review comment")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "review comment added", comment)
}
