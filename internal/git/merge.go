package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// MergeResult represents the result of a merge operation
type MergeResult int

const (
	// MergeDone indicates the merge completed
	MergeDone MergeResult = iota
	// MergeUnneeded indicates there was nothing to merge
	MergeUnneeded
	// MergeConflict indicates the merge stopped on conflicts and awaits resolution
	MergeConflict
)

// Merge merges the given commitishes into the current branch in one merge
// operation. Conflicts are reported as MergeConflict, not as an error, so the
// caller can suspend for interactive resolution.
func (g *Git) Merge(ctx context.Context, message string, revs ...string) (MergeResult, error) {
	if len(revs) == 0 {
		return MergeUnneeded, nil
	}

	args := []string{"merge", "--no-edit", "-m", message}
	args = append(args, revs...)
	if _, err := g.runner.Run(ctx, args...); err != nil {
		if g.IsMergeInProgress(ctx) {
			return MergeConflict, nil
		}
		return MergeConflict, fmt.Errorf("merge failed: %w", err)
	}
	return MergeDone, nil
}

// MergeSquash stages the changes of a commitish onto the current branch
// without committing, as `git merge --squash` does
func (g *Git) MergeSquash(ctx context.Context, rev string) (MergeResult, error) {
	if _, err := g.runner.Run(ctx, "merge", "--squash", rev); err != nil {
		if g.IsMergeInProgress(ctx) || g.hasUnmergedEntries(ctx) {
			return MergeConflict, nil
		}
		return MergeConflict, fmt.Errorf("squash merge failed: %w", err)
	}
	return MergeDone, nil
}

// MergeContinue concludes a conflicted merge after the user resolved it
func (g *Git) MergeContinue(ctx context.Context) error {
	if _, err := g.runner.Run(ctx, "-c", "core.editor=true", "merge", "--continue"); err != nil {
		return fmt.Errorf("merge continue failed: %w", err)
	}
	return nil
}

// MergeAbort aborts an in-progress merge
func (g *Git) MergeAbort(ctx context.Context) error {
	if _, err := g.runner.Run(ctx, "merge", "--abort"); err != nil {
		return fmt.Errorf("merge abort failed: %w", err)
	}
	return nil
}

// IsMergeInProgress checks whether a merge is waiting for conflict resolution
func (g *Git) IsMergeInProgress(ctx context.Context) bool {
	gitDir, err := g.runner.Run(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(g.root, gitDir)
	}
	_, err = os.Stat(filepath.Join(gitDir, "MERGE_HEAD"))
	return err == nil
}

func (g *Git) hasUnmergedEntries(ctx context.Context) bool {
	output, err := g.runner.Run(ctx, "ls-files", "--unmerged")
	return err == nil && output != ""
}
