package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/go-github/v77/github"
	"go.uber.org/zap"
)

// contentDownloader is the part of the GitHub repositories API the fetcher uses
type contentDownloader interface {
	DownloadContents(ctx context.Context, owner, repo, filepath string, opts *github.RepositoryContentGetOptions) (io.ReadCloser, *github.Response, error)
}

// GitHubFetcher downloads files through the GitHub contents API
type GitHubFetcher struct {
	repos  contentDownloader
	src    Source
	logger *zap.Logger
}

// NewClient creates a GitHub API client, authenticated when token is set
func NewClient(token string) *github.Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}

// NewGitHubFetcher creates a fetcher for a GitHub source
func NewGitHubFetcher(src Source, token string, logger *zap.Logger) *GitHubFetcher {
	return &GitHubFetcher{
		repos:  NewClient(token).Repositories,
		src:    src,
		logger: logger,
	}
}

// Open downloads name from the source's directory at the source's ref
func (g *GitHubFetcher) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	filePath := path.Join(g.src.Dir, name)

	var opts *github.RepositoryContentGetOptions
	if g.src.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: g.src.Ref}
	}

	g.logger.Debug("downloading from github",
		zap.String("repo", g.src.Owner+"/"+g.src.Repo),
		zap.String("path", filePath),
		zap.String("ref", g.src.Ref))

	rc, resp, err := g.repos.DownloadContents(ctx, g.src.Owner, g.src.Repo, filePath, opts)
	if err != nil {
		return nil, handleAPIError(err, fmt.Sprintf("failed to download %s from %s/%s", filePath, g.src.Owner, g.src.Repo))
	}
	if resp != nil && resp.Rate.Limit > 0 {
		g.logger.Debug("github rate limit", zap.Int("remaining", resp.Rate.Remaining), zap.Int("limit", resp.Rate.Limit))
	}
	return rc, nil
}

// Close is a no-op; the HTTP client holds no per-fetch state
func (g *GitHubFetcher) Close() error {
	return nil
}

// handleAPIError wraps API errors with context and detects rate limiting
func handleAPIError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return fmt.Errorf("%s: hit primary rate limit (used %d of %d, resets at %v), set GITHUB_TOKEN for a higher limit: %w",
			msg, rateLimitErr.Rate.Used, rateLimitErr.Rate.Limit, rateLimitErr.Rate.Reset.Time, err)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: hit secondary rate limit (retry after %v): %w",
			msg, abuseErr.GetRetryAfter(), err)
	}

	return fmt.Errorf("%s: %w", msg, err)
}
