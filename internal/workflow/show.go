package workflow

import (
	"context"
	"fmt"
	"strings"

	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// Show renders the commits a WIP branch holds on top of its base
func Show(ctx context.Context, rc *runtime.Context, branch string) (string, error) {
	if branch == "" {
		current, err := rc.Git.CurrentBranch(ctx)
		if err != nil {
			return "", err
		}
		branch = current
	}

	w, err := wip.ParseWip(branch)
	if err != nil {
		return "", err
	}

	lines, err := rc.Git.CommitLog(ctx, w.Base+".."+branch)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return fmt.Sprintf("%s has no commits on top of %s\n", branch, w.Base), nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// Diff renders the diff between a WIP branch and its base
func Diff(ctx context.Context, rc *runtime.Context, branch string, stat bool) (string, error) {
	if branch == "" {
		current, err := rc.Git.CurrentBranch(ctx)
		if err != nil {
			return "", err
		}
		branch = current
	}

	w, err := wip.ParseWip(branch)
	if err != nil {
		return "", err
	}

	return rc.Git.Diff(ctx, w.Base, branch, stat)
}
