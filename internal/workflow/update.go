package workflow

import (
	"context"
	"errors"
	"fmt"

	"gitwip.dev/gitwip/internal/git"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// Update merges, per base, every remote WIP tip not yet contained in the
// own-WIP branch or the merge branch into the own-WIP branch, together with
// the base tip when the own-WIP branch has fallen behind it. Bases with
// nothing unmerged are left untouched.
func Update(ctx context.Context, rc *runtime.Context) error {
	snap, err := wip.Snapshot(ctx, rc.Git, rc.RemoteFilter)
	if err != nil {
		return err
	}

	var bases []string
	if rc.Base != "" {
		bases = []string{rc.Base}
	} else {
		for _, base := range wip.Bases(snap) {
			if len(wip.LocalWipRefs(snap, base)) > 0 {
				bases = append(bases, base)
			}
		}
	}
	if len(bases) == 0 {
		rc.Splog.Info("No wip branches to update")
		return nil
	}

	release, err := rc.AcquireCheckout(ctx)
	if err != nil {
		return err
	}
	return finishOrPause(ctx, release, updateBases(ctx, rc, snap, bases))
}

// updateBases processes each base in turn. A conflict pauses the whole run:
// the returned PausedError's Resume finishes the conflicted merge and then
// picks up the bases that were still pending.
func updateBases(ctx context.Context, rc *runtime.Context, snap map[string]wip.WipRef, bases []string) error {
	for i, base := range bases {
		err := updateBase(ctx, rc, snap, base)
		var paused *PausedError
		if errors.As(err, &paused) {
			pending := bases[i+1:]
			inner := paused.Resume
			paused.Resume = func(ctx context.Context) error {
				if err := inner(ctx); err != nil {
					return err
				}
				return updateBases(ctx, rc, snap, pending)
			}
			return paused
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// finishOrPause restores the original checkout unless the workflow paused, in
// which case restoration is deferred until the resumed workflow completes (or
// pauses again).
func finishOrPause(ctx context.Context, release func(context.Context), err error) error {
	var paused *PausedError
	if !errors.As(err, &paused) {
		release(ctx)
		return err
	}
	inner := paused.Resume
	paused.Resume = func(ctx context.Context) error {
		return finishOrPause(ctx, release, inner(ctx))
	}
	return err
}

func updateBase(ctx context.Context, rc *runtime.Context, snap map[string]wip.WipRef, base string) error {
	own := wip.Owned(base, rc.Owner).BranchName()

	if !rc.Git.BranchExists(ctx, own) {
		if !rc.Git.BranchExists(ctx, base) {
			rc.Splog.Warn("skipping %s: branch does not exist locally", base)
			return nil
		}
		baseSHA, err := rc.Git.ResolveRevision(ctx, base)
		if err != nil {
			return err
		}
		if err := rc.Git.CreateBranch(ctx, own, baseSHA); err != nil {
			return err
		}
	}

	if err := rc.Git.CheckoutBranch(ctx, own); err != nil {
		return err
	}
	ownSHA, err := rc.Git.ResolveRevision(ctx, own)
	if err != nil {
		return err
	}

	mergeTip, _, err := rc.Git.GetRef(ctx, "refs/heads/"+wip.MergeTracking(base).BranchName())
	if err != nil {
		return err
	}

	var revs []string
	for _, ref := range wip.RemoteWipRefs(snap, base) {
		merged, err := isContained(ctx, rc, ref.SHA, ownSHA, mergeTip)
		if err != nil {
			return err
		}
		if !merged {
			revs = append(revs, ref.SHA)
		}
	}

	if rc.Git.BranchExists(ctx, base) {
		baseSHA, err := rc.Git.ResolveRevision(ctx, base)
		if err != nil {
			return err
		}
		contained, err := rc.Git.IsAncestor(ctx, baseSHA, ownSHA)
		if err != nil {
			return err
		}
		if !contained {
			revs = append(revs, baseSHA)
		}
	}

	if len(revs) == 0 {
		rc.Splog.Debug("%s: nothing unmerged", base)
		return nil
	}

	message := fmt.Sprintf("Merge wip branches into %s", own)
	result, err := rc.Git.Merge(ctx, message, revs...)
	if err != nil {
		return err
	}
	if result == git.MergeConflict {
		return &PausedError{
			Reason: fmt.Sprintf("merge conflict while updating %s", own),
			Resume: func(ctx context.Context) error {
				return rc.Git.MergeContinue(ctx)
			},
		}
	}

	rc.Splog.Info("Updated %s with %d unmerged tip(s)", own, len(revs))
	return nil
}

// isContained reports whether sha is an ancestor of any of the given tips
func isContained(ctx context.Context, rc *runtime.Context, sha string, tips ...string) (bool, error) {
	for _, tip := range tips {
		if tip == "" {
			continue
		}
		if sha == tip {
			return true, nil
		}
		ok, err := rc.Git.IsAncestor(ctx, sha, tip)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
