package dataset

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/memory"
	"go.uber.org/zap"
)

// GitFetcher reads files out of a shallow in-memory clone
type GitFetcher struct {
	commit *object.Commit
	src    Source
	logger *zap.Logger
}

// CloneRepository shallow-clones url into memory. ref may name a branch,
// a tag or a full reference; branches are tried before tags.
func CloneRepository(ctx context.Context, url, ref string) (*git.Repository, error) {
	var lastErr error
	for _, name := range referenceCandidates(ref) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("clone cancelled: %w", err)
		}

		opts := &git.CloneOptions{
			URL:          url,
			Depth:        1,
			SingleBranch: true,
		}
		if name != "" {
			opts.ReferenceName = name
		}

		repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, opts)
		if err == nil {
			return repo, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("clone cancelled: %w", ctxErr)
		}
		lastErr = err
	}
	return nil, lastErr
}

// referenceCandidates lists the references ref could mean, in the order to try
func referenceCandidates(ref string) []plumbing.ReferenceName {
	switch {
	case ref == "":
		return []plumbing.ReferenceName{""}
	case strings.HasPrefix(ref, "refs/"):
		return []plumbing.ReferenceName{plumbing.ReferenceName(ref)}
	default:
		return []plumbing.ReferenceName{
			plumbing.NewBranchReferenceName(ref),
			plumbing.NewTagReferenceName(ref),
		}
	}
}

// NewGitFetcher clones the source and resolves its HEAD commit.
// Cancelling ctx aborts a clone in progress.
func NewGitFetcher(ctx context.Context, src Source, logger *zap.Logger) (*GitFetcher, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled before clone: %w", err)
	}

	logger.Info("cloning dataset repository", zap.String("url", src.URL), zap.String("ref", src.Ref))
	repo, err := CloneRepository(ctx, src.URL, src.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to clone repository '%s': %w", src.URL, err)
	}
	return newGitFetcherFromRepo(repo, src, logger)
}

func newGitFetcherFromRepo(repo *git.Repository, src Source, logger *zap.Logger) (*GitFetcher, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	logger.Debug("dataset repository ready", zap.String("commit", head.Hash().String()))

	return &GitFetcher{commit: commit, src: src, logger: logger}, nil
}

// Open reads name from the HEAD tree
func (g *GitFetcher) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filePath := path.Join(g.src.Dir, name)

	file, err := g.commit.File(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s in %s: %w", filePath, g.src.URL, err)
	}
	rc, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return rc, nil
}

// Close drops the reference to the in-memory clone
func (g *GitFetcher) Close() error {
	g.commit = nil
	return nil
}
