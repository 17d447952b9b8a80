package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/internal/models"
)

// OverviewService assembles the full dashboard payload for one request.
type OverviewService interface {
	GetOverview(ctx context.Context, role, username string) (dto.OverviewResponse, error)
}

type overviewService struct {
	leaderboard LeaderboardService
	stats       StatsService
	reviews     ReviewService
	assignments AssignmentLister
	logger      zerolog.Logger
}

// AssignmentLister is the slice of the assignment surface the overview needs.
type AssignmentLister interface {
	ListAssignments(ctx context.Context) ([]dto.AssignmentResponse, error)
}

// NewOverviewService builds the dashboard fan-out aggregator.
func NewOverviewService(
	leaderboard LeaderboardService,
	stats StatsService,
	reviews ReviewService,
	assignments AssignmentLister,
	logger zerolog.Logger,
) OverviewService {
	return &overviewService{
		leaderboard: leaderboard,
		stats:       stats,
		reviews:     reviews,
		assignments: assignments,
		logger:      logger.With().Str("component", "overview_service").Logger(),
	}
}

// GetOverview issues the independent reads concurrently and joins them once
// all complete. The leaderboard and assignment branches are load-bearing and
// fail the request; the review branch is decoration and degrades to an empty
// map. Stats are derived after the join because the computed fallback needs
// the full leaderboard.
func (s *overviewService) GetOverview(ctx context.Context, role, username string) (dto.OverviewResponse, error) {
	tracer := otel.Tracer("github.com/b4os-dev/classboard-api/internal/service/overview")
	ctx, span := tracer.Start(ctx, "overview.aggregate", trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(attribute.String("overview.role", role))
	defer span.End()

	var (
		leaderboard []dto.LeaderboardEntry
		assignments []dto.AssignmentResponse
		reviews     map[string]dto.ReviewStatusSummary
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		entries, err := s.leaderboard.Full(groupCtx)
		if err != nil {
			return err
		}
		leaderboard = entries
		return nil
	})

	group.Go(func() error {
		list, err := s.assignments.ListAssignments(groupCtx)
		if err != nil {
			return err
		}
		assignments = list
		return nil
	})

	group.Go(func() error {
		summaries, err := s.reviews.SummaryByStudent(groupCtx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("review summaries unavailable, serving overview without them")
			reviews = map[string]dto.ReviewStatusSummary{}
			return nil
		}
		reviews = summaries
		return nil
	})

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "overview_fanout_failed")
		return dto.OverviewResponse{}, err
	}

	stats, err := s.stats.GetStats(ctx, leaderboard)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stats_failed")
		return dto.OverviewResponse{}, err
	}

	span.SetAttributes(attribute.Int("overview.leaderboard_size", len(leaderboard)))

	return dto.OverviewResponse{
		Leaderboard: FilterForRole(leaderboard, role, username),
		Stats:       stats,
		Assignments: assignments,
		Reviews:     filterReviewsForRole(reviews, role, username),
	}, nil
}

// filterReviewsForRole mirrors the leaderboard visibility rule for the
// review map: non-privileged callers see at most their own summary.
func filterReviewsForRole(reviews map[string]dto.ReviewStatusSummary, role, username string) map[string]dto.ReviewStatusSummary {
	if models.IsPrivileged(role) {
		return reviews
	}

	filtered := map[string]dto.ReviewStatusSummary{}
	if summary, ok := reviews[username]; ok {
		filtered[username] = summary
	}
	return filtered
}
