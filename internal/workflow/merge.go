package workflow

import (
	"context"
	"fmt"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/git"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// MergeOptions controls the merge verb
type MergeOptions struct {
	// EditMessage, when set, lets the user edit the default squash commit
	// message. Nil keeps the default.
	EditMessage func(defaultMessage string) (string, error)
}

// Merge squash-merges the current WIP branch into its base, records the merge
// on the base's merge branch, and deletes the WIP branch. Requires a clean
// working tree and being on a (non-merge-tracking) WIP branch. The user ends
// up on the base branch.
func Merge(ctx context.Context, rc *runtime.Context, opts MergeOptions) error {
	branch, err := rc.Git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	w, err := wip.ParseWip(branch)
	if err != nil {
		return err
	}
	if w.IsMerge() {
		return gitwiperrors.ErrNotAWipBranch
	}

	wipTip, err := rc.Git.ResolveRevision(ctx, branch)
	if err != nil {
		return err
	}

	release, err := rc.AcquireCheckout(ctx)
	if err != nil {
		return err
	}
	defer func() { release(ctx) }()

	message := fmt.Sprintf("Merge %s", branch)
	if opts.EditMessage != nil {
		message, err = opts.EditMessage(message)
		if err != nil {
			return err
		}
	}

	if err := rc.Git.CheckoutBranch(ctx, w.Base); err != nil {
		return err
	}

	result, err := rc.Git.MergeSquash(ctx, branch)
	if err != nil {
		return err
	}
	if result == git.MergeConflict {
		return &PausedError{
			Reason: fmt.Sprintf("conflict while squash-merging %s into %s", branch, w.Base),
			Resume: func(ctx context.Context) error {
				return concludeMerge(ctx, rc, w.Base, branch, wipTip, message)
			},
		}
	}

	return concludeMerge(ctx, rc, w.Base, branch, wipTip, message)
}

// concludeMerge commits the squashed changes, appends the audit record and
// deletes the folded WIP branch.
func concludeMerge(ctx context.Context, rc *runtime.Context, base, branch, wipTip, message string) error {
	if err := rc.Git.Commit(ctx, message); err != nil {
		return err
	}
	resultSHA, err := rc.Git.HeadSHA(ctx)
	if err != nil {
		return err
	}

	if _, err := rc.Maintainer().RecordMerge(ctx, base, wipTip, resultSHA); err != nil {
		return err
	}

	if err := rc.Git.DeleteBranch(ctx, branch); err != nil {
		return err
	}

	rc.Splog.Info("Merged %s into %s", branch, base)
	return nil
}
