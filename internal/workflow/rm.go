package workflow

import (
	"context"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// RmOptions controls the rm verb
type RmOptions struct {
	Branch string
	// Remote also deletes the branch on the candidate remotes
	Remote bool
	// Confirm gates each remote deletion; nil means proceed
	Confirm func(prompt string) (bool, error)
}

// Rm deletes a WIP branch locally, and optionally on the remotes
func Rm(ctx context.Context, rc *runtime.Context, opts RmOptions) error {
	branch := opts.Branch
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

	current, err := rc.Git.CurrentBranch(ctx)
	if err == nil && current == branch {
		// Can't delete the checked-out branch; step back to the base first
		if err := rc.Git.CheckoutBranch(ctx, w.Base); err != nil {
			return err
		}
	}

	if rc.Git.BranchExists(ctx, branch) {
		if err := rc.Git.DeleteBranch(ctx, branch); err != nil {
			return err
		}
		rc.Splog.Info("Deleted %s", branch)
	}

	if !opts.Remote {
		return nil
	}
	if rc.Offline {
		rc.Splog.Warn("offline: not deleting %s on remotes", branch)
		return nil
	}

	remotes, err := rc.RequireRemotes()
	if err != nil {
		return err
	}
	for _, remote := range remotes {
		if opts.Confirm != nil {
			ok, err := opts.Confirm("Delete " + branch + " on " + remote + "?")
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		spec := wip.PushSpec{Dst: branch, Remote: remote}
		if err := rc.Git.Push(ctx, remote, false, spec.Refspec()); err != nil {
			return err
		}
		rc.Splog.Info("Deleted %s on %s", branch, remote)
	}
	return nil
}
