package git

import (
	"context"
	"fmt"
	"strings"
)

// HasStagedChanges checks if there are staged changes
func (g *Git) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := g.runner.Run(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUnstagedChanges checks if there are unstaged changes, including untracked files
func (g *Git) HasUnstagedChanges(ctx context.Context) (bool, error) {
	output, err := g.runner.Run(ctx, "diff", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check unstaged changes: %w", err)
	}
	if strings.TrimSpace(output) != "" {
		return true, nil
	}

	untracked, err := g.runner.Run(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return false, fmt.Errorf("failed to check untracked files: %w", err)
	}
	return strings.TrimSpace(untracked) != "", nil
}

// HasUncommittedChanges checks if there are any uncommitted changes at all
func (g *Git) HasUncommittedChanges(ctx context.Context) (bool, error) {
	staged, err := g.HasStagedChanges(ctx)
	if err != nil {
		return false, err
	}
	if staged {
		return true, nil
	}
	return g.HasUnstagedChanges(ctx)
}

// StageAll stages all changes including untracked files
func (g *Git) StageAll(ctx context.Context) error {
	if _, err := g.runner.Run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}
