package git

import (
	"context"
	"fmt"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
)

// CurrentBranch returns the short name of the checked-out branch.
// Detached HEAD yields ErrNotOnBranch.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := g.runner.Run(ctx, "symbolic-ref", "--short", "--quiet", "HEAD")
	if err != nil || branch == "" {
		return "", gitwiperrors.ErrNotOnBranch
	}
	return branch, nil
}

// BranchExists reports whether a local branch exists
func (g *Git) BranchExists(ctx context.Context, branchName string) bool {
	_, ok, _ := g.GetRef(ctx, "refs/heads/"+branchName)
	return ok
}

// CheckoutBranch checks out an existing branch or commitish
func (g *Git) CheckoutBranch(ctx context.Context, branchName string) error {
	if _, err := g.runner.Run(ctx, "checkout", branchName); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branchName, err)
	}
	return nil
}

// CreateAndCheckoutBranch creates and checks out a new branch at HEAD.
// The working tree is carried over, so this is safe on a dirty tree.
func (g *Git) CreateAndCheckoutBranch(ctx context.Context, branchName string) error {
	if _, err := g.runner.Run(ctx, "checkout", "-b", branchName); err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", branchName, err)
	}
	return nil
}

// CreateBranch creates a branch at a commitish without checking it out
func (g *Git) CreateBranch(ctx context.Context, branchName, commitish string) error {
	if _, err := g.runner.Run(ctx, "branch", branchName, commitish); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch deletes a local branch
func (g *Git) DeleteBranch(ctx context.Context, branchName string) error {
	if _, err := g.runner.Run(ctx, "branch", "-D", branchName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}
