package workflow

import (
	"context"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// Marker messages for checkpoint commits
const (
	StagedCommitMessage      = "WIP (staged)"
	UncommittedCommitMessage = "WIP (uncommitted)"
)

// Save checkpoints uncommitted changes onto the current base's own-WIP
// branch, creating the branch at the current tip if it does not exist yet.
// Staged and unstaged changes become two distinct commits.
func Save(ctx context.Context, rc *runtime.Context) error {
	staged, err := rc.Git.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	unstaged, err := rc.Git.HasUnstagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged && !unstaged {
		return gitwiperrors.ErrNothingToSave
	}

	branch, err := rc.Git.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	if !wip.IsWipBranch(branch) {
		own := wip.Owned(branch, rc.Owner).BranchName()
		if rc.Git.BranchExists(ctx, own) {
			// Branch creation and same-tip checkout both carry the dirty
			// tree along; anything else is git's own refusal to lose work.
			if err := rc.Git.CheckoutBranch(ctx, own); err != nil {
				return err
			}
		} else {
			if err := rc.Git.CreateAndCheckoutBranch(ctx, own); err != nil {
				return err
			}
		}
		branch = own
	} else if w, err := wip.ParseWip(branch); err != nil {
		return err
	} else if w.IsMerge() {
		// The merge branch is an audit log; checkpoints never land on it
		return gitwiperrors.ErrNotAWipBranch
	}

	if staged {
		if err := rc.Git.Commit(ctx, StagedCommitMessage); err != nil {
			return err
		}
		rc.Splog.Debug("committed staged changes on %s", branch)
	}
	if unstaged {
		if err := rc.Git.StageAll(ctx); err != nil {
			return err
		}
		if err := rc.Git.Commit(ctx, UncommittedCommitMessage); err != nil {
			return err
		}
		rc.Splog.Debug("committed unstaged changes on %s", branch)
	}

	rc.Splog.Info("Saved work in progress on %s", branch)
	return nil
}
