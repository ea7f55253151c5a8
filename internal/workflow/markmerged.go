package workflow

import (
	"context"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// MarkMerged records a WIP branch's tip in the merge branch's audit log
// without folding it into the base. Used when the work landed through some
// other route (e.g. an externally merged change); gc will then collect the
// branch.
func MarkMerged(ctx context.Context, rc *runtime.Context, branch string) error {
	if branch == "" {
		current, err := rc.Git.CurrentBranch(ctx)
		if err != nil {
			return err
		}
		branch = current
	}

	w, err := wip.ParseWip(branch)
	if err != nil {
		return err
	}
	if w.IsMerge() {
		return gitwiperrors.ErrNotAWipBranch
	}

	tip, err := rc.Git.ResolveRevision(ctx, branch)
	if err != nil {
		return err
	}

	baseSHA := ""
	if rc.Git.BranchExists(ctx, w.Base) {
		baseSHA, err = rc.Git.ResolveRevision(ctx, w.Base)
		if err != nil {
			return err
		}
	}

	if _, err := rc.Maintainer().RecordMerge(ctx, w.Base, tip, baseSHA); err != nil {
		return err
	}
	rc.Splog.Info("Marked %s as merged", branch)
	return nil
}
