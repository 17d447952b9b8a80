package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/pkg/github"
)

// ErrRepositoryNotFound indicates the student fork does not exist.
var ErrRepositoryNotFound = errors.New("student repository not found")

// RepositoryFetcher abstracts the GitHub lookup for testing.
type RepositoryFetcher interface {
	GetRepository(ctx context.Context, name string) (github.RepositoryInfo, error)
	Organization() string
}

// RepoMetadataService resolves a student's classroom fork metadata for
// display. Responses are cached briefly in Redis so dashboard refreshes do
// not burn through the GitHub rate limit.
type RepoMetadataService interface {
	GetStudentRepository(ctx context.Context, assignment, username string) (dto.RepositoryInfo, error)
}

type repoMetadataService struct {
	fetcher  RepositoryFetcher
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewRepoMetadataService builds the repository metadata service.
func NewRepoMetadataService(fetcher RepositoryFetcher, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RepoMetadataService {
	return &repoMetadataService{
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "repo_metadata_service").Logger(),
	}
}

func (s *repoMetadataService) GetStudentRepository(ctx context.Context, assignment, username string) (dto.RepositoryInfo, error) {
	// GitHub Classroom names student forks <assignment>-<username>.
	repoName := fmt.Sprintf("%s-%s", assignment, username)
	cacheKey := fmt.Sprintf("repo:%s/%s", s.fetcher.Organization(), repoName)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var info dto.RepositoryInfo
			if unmarshalErr := json.Unmarshal([]byte(cached), &info); unmarshalErr == nil {
				return info, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read repository cache")
		}
	}

	repo, err := s.fetcher.GetRepository(ctx, repoName)
	if err != nil {
		if errors.Is(err, github.ErrRepositoryNotFound) {
			return dto.RepositoryInfo{}, ErrRepositoryNotFound
		}
		return dto.RepositoryInfo{}, err
	}

	info := dto.RepositoryInfo{
		FullName:  repo.FullName,
		HTMLURL:   repo.HTMLURL,
		IsFork:    repo.IsFork,
		CreatedAt: repo.CreatedAt,
		UpdatedAt: repo.UpdatedAt,
		PushedAt:  repo.PushedAt,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(info); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store repository cache")
			}
		}
	}

	return info, nil
}
