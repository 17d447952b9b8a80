package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	gh "github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// ErrRepositoryNotFound indicates the fork does not exist on GitHub.
var ErrRepositoryNotFound = errors.New("repository not found")

// Config carries the credentials and organization for classroom fork lookups.
type Config struct {
	Token        string
	Organization string
}

// RepositoryInfo is the subset of repository metadata the dashboard shows.
type RepositoryInfo struct {
	FullName  string
	HTMLURL   string
	IsFork    bool
	CreatedAt *time.Time
	UpdatedAt *time.Time
	PushedAt  *time.Time
}

// Client is a read-only GitHub REST client scoped to one organization.
type Client struct {
	api    *gh.Client
	org    string
	logger zerolog.Logger
}

// New constructs a GitHub client. An empty token still works for public
// repositories, with tighter rate limits.
func New(cfg Config, logger zerolog.Logger) *Client {
	httpClient := http.DefaultClient
	if cfg.Token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), source)
	}

	return &Client{
		api:    gh.NewClient(httpClient),
		org:    cfg.Organization,
		logger: logger.With().Str("component", "github_client").Logger(),
	}
}

// Organization returns the classroom organization the client is scoped to.
func (c *Client) Organization() string {
	return c.org
}

// GetRepository fetches metadata for one repository in the classroom
// organization.
func (c *Client) GetRepository(ctx context.Context, name string) (RepositoryInfo, error) {
	repo, resp, err := c.api.Repositories.Get(ctx, c.org, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return RepositoryInfo{}, ErrRepositoryNotFound
		}

		var rateErr *gh.RateLimitError
		if errors.As(err, &rateErr) {
			c.logger.Warn().Str("repo", name).Time("reset", rateErr.Rate.Reset.Time).Msg("github rate limit exceeded")
		}

		return RepositoryInfo{}, err
	}

	return RepositoryInfo{
		FullName:  repo.GetFullName(),
		HTMLURL:   repo.GetHTMLURL(),
		IsFork:    repo.GetFork(),
		CreatedAt: timestampPtr(repo.CreatedAt),
		UpdatedAt: timestampPtr(repo.UpdatedAt),
		PushedAt:  timestampPtr(repo.PushedAt),
	}, nil
}

func timestampPtr(ts *gh.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}

	t := ts.Time
	return &t
}
