package workflow

import (
	"context"

	"gitwip.dev/gitwip/internal/runtime"
)

// Pull is fetch followed by update
func Pull(ctx context.Context, rc *runtime.Context) error {
	if err := Fetch(ctx, rc); err != nil {
		return err
	}
	return Update(ctx, rc)
}
