package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// EmptyTreeSHA is the well-known id of git's empty tree object, used as the
// tree for fabricated merge-log commits whose content is irrelevant.
const EmptyTreeSHA = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// CreateCommit creates a commit object directly from a tree, parents and
// message, without touching the index or working tree.
func (g *Git) CreateCommit(ctx context.Context, tree string, parents []string, message string) (string, error) {
	args := []string{"commit-tree", tree}
	for _, parent := range parents {
		args = append(args, "-p", parent)
	}
	sha, err := g.runner.RunWithInput(ctx, message, args...)
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}
	return sha, nil
}

// CommitInfo returns the full message and parent ids of a commit
func (g *Git) CommitInfo(ctx context.Context, sha string) (string, []string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	commit, err := g.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read commit %s: %w", sha, err)
	}

	parents := make([]string, 0, commit.NumParents())
	for _, parent := range commit.ParentHashes {
		parents = append(parents, parent.String())
	}
	return commit.Message, parents, nil
}

// Commit creates a commit from the index with the given message
func (g *Git) Commit(ctx context.Context, message string) error {
	if _, err := g.runner.Run(ctx, "commit", "--no-verify", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// HeadSHA returns the commit id of HEAD
func (g *Git) HeadSHA(ctx context.Context) (string, error) {
	return g.ResolveRevision(ctx, "HEAD")
}

// CommitLog returns one-line log entries for a revision range
func (g *Git) CommitLog(ctx context.Context, rangeSpec string) ([]string, error) {
	return g.runner.RunLines(ctx, "log", "--oneline", rangeSpec)
}

// Diff returns the diff between two commitishes
func (g *Git) Diff(ctx context.Context, left, right string, stat bool) (string, error) {
	args := []string{"diff"}
	if stat {
		args = append(args, "--stat")
	}
	args = append(args, left+"..."+right)
	return g.runner.RunRaw(ctx, args...)
}
