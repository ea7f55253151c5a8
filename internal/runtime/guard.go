package runtime

import (
	"context"
	"errors"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
)

// checkoutGuard remembers the position the user started at so any workflow
// that moves the checkout can restore it on every exit path.
type checkoutGuard struct {
	original string
	isBranch bool
	restored bool
}

// AcquireCheckout captures the current checkout position and returns a
// release function that restores it. Capturing fails with ErrDirtyWorkingTree
// if uncommitted changes exist, since a silent checkout would lose them.
// Nested acquisition reuses the first captured position; only the outermost
// release restores.
func (c *Context) AcquireCheckout(ctx context.Context) (func(context.Context), error) {
	if c.guard != nil && !c.guard.restored {
		// Nested acquisition: the outer guard owns restoration
		return func(context.Context) {}, nil
	}

	dirty, err := c.Git.HasUncommittedChanges(ctx)
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, gitwiperrors.ErrDirtyWorkingTree
	}

	guard := &checkoutGuard{isBranch: true}
	guard.original, err = c.Git.CurrentBranch(ctx)
	if errors.Is(err, gitwiperrors.ErrNotOnBranch) {
		guard.isBranch = false
		guard.original, err = c.Git.HeadSHA(ctx)
	}
	if err != nil {
		return nil, err
	}

	c.guard = guard
	return func(ctx context.Context) { c.restoreCheckout(ctx, guard) }, nil
}

func (c *Context) restoreCheckout(ctx context.Context, guard *checkoutGuard) {
	if guard.restored {
		return
	}
	guard.restored = true

	if guard.isBranch {
		current, err := c.Git.CurrentBranch(ctx)
		if err == nil && current == guard.original {
			return
		}
		if !c.Git.BranchExists(ctx, guard.original) {
			// The workflow deleted the starting branch (e.g. merge); there is
			// nothing to restore to.
			c.Splog.Debug("original branch %s no longer exists, staying put", guard.original)
			return
		}
	}

	if err := c.Git.CheckoutBranch(ctx, guard.original); err != nil {
		c.Splog.Warn("failed to restore checkout to %s: %v", guard.original, err)
	}
}
