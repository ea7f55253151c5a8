package workflow

import (
	"context"
	"errors"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/runtime"
)

// Sync is fetch, then save if the tree is dirty, then push. The ordering
// matters: local work must be checkpointed before the push, and remote state
// must be known before computing what to push.
func Sync(ctx context.Context, rc *runtime.Context) error {
	if err := Fetch(ctx, rc); err != nil {
		return err
	}

	dirty, err := rc.Git.HasUncommittedChanges(ctx)
	if err != nil {
		return err
	}
	if dirty {
		if err := Save(ctx, rc); err != nil && !errors.Is(err, gitwiperrors.ErrNothingToSave) {
			return err
		}
	}

	return Push(ctx, rc)
}
