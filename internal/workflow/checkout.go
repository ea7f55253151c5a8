package workflow

import (
	"context"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// Checkout switches to a base branch and then ensures its own-WIP branch
// exists and is checked out. Idempotent: already being on the own-WIP branch
// is a no-op.
func Checkout(ctx context.Context, rc *runtime.Context, base string) error {
	if wip.IsWipBranch(base) {
		return gitwiperrors.ErrIsAWipBranch
	}
	own := wip.Owned(base, rc.Owner).BranchName()

	current, err := rc.Git.CurrentBranch(ctx)
	if err == nil && current == own {
		rc.Splog.Debug("already on %s", own)
		return nil
	}

	if err := rc.Git.CheckoutBranch(ctx, base); err != nil {
		return err
	}

	if rc.Git.BranchExists(ctx, own) {
		return rc.Git.CheckoutBranch(ctx, own)
	}
	if err := rc.Git.CreateAndCheckoutBranch(ctx, own); err != nil {
		return err
	}
	rc.Splog.Info("Created %s", own)
	return nil
}
