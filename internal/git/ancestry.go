package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// IsAncestor checks whether ancestor is reachable from descendant.
// Unrelated histories are not an error: they report false.
func (g *Git) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ancestorSHA, err := g.ResolveRevision(ctx, ancestor)
	if err != nil {
		return false, fmt.Errorf("failed to resolve ancestor: %w", err)
	}
	descendantSHA, err := g.ResolveRevision(ctx, descendant)
	if err != nil {
		return false, fmt.Errorf("failed to resolve descendant: %w", err)
	}

	if ancestorSHA == descendantSHA {
		return true, nil
	}

	ancestorCommit, err := g.repo.CommitObject(plumbing.NewHash(ancestorSHA))
	if err != nil {
		return false, fmt.Errorf("failed to get ancestor commit: %w", err)
	}
	descendantCommit, err := g.repo.CommitObject(plumbing.NewHash(descendantSHA))
	if err != nil {
		return false, fmt.Errorf("failed to get descendant commit: %w", err)
	}

	return ancestorCommit.IsAncestor(descendantCommit)
}

// MergeBase returns the merge base of two commitishes, or "" for unrelated histories
func (g *Git) MergeBase(ctx context.Context, rev1, rev2 string) (string, error) {
	sha1, err := g.ResolveRevision(ctx, rev1)
	if err != nil {
		return "", err
	}
	sha2, err := g.ResolveRevision(ctx, rev2)
	if err != nil {
		return "", err
	}

	commit1, err := g.repo.CommitObject(plumbing.NewHash(sha1))
	if err != nil {
		return "", fmt.Errorf("failed to get commit: %w", err)
	}
	commit2, err := g.repo.CommitObject(plumbing.NewHash(sha2))
	if err != nil {
		return "", fmt.Errorf("failed to get commit: %w", err)
	}

	bases, err := commit1.MergeBase(commit2)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base: %w", err)
	}
	if len(bases) == 0 {
		return "", nil
	}
	return bases[0].Hash.String(), nil
}
