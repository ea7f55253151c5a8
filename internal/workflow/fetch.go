package workflow

import (
	"context"
	"fmt"

	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// FetchRefspec is the force-fetch refspec mapping a remote's WIP heads into
// its remote-tracking namespace
func FetchRefspec(remote string) string {
	return fmt.Sprintf("+refs/heads/wip/*:refs/remotes/%s/wip/*", remote)
}

// Fetch pulls the WIP ref namespace from every candidate remote, then
// reconciles each base's merge branch so the local tracker observes the
// fetched state.
func Fetch(ctx context.Context, rc *runtime.Context) error {
	if rc.Offline {
		rc.Splog.Debug("offline: skipping fetch")
		return nil
	}

	remotes, err := rc.RequireRemotes()
	if err != nil {
		return err
	}

	for _, remote := range remotes {
		rc.Splog.Debug("fetching wip refs from %s", remote)
		if err := rc.Git.Fetch(ctx, remote, FetchRefspec(remote)); err != nil {
			return err
		}
	}

	snap, err := wip.Snapshot(ctx, rc.Git, rc.RemoteFilter)
	if err != nil {
		return err
	}

	maintainer := rc.Maintainer()
	for _, base := range wip.Bases(snap) {
		tips := wip.RemoteMergeTips(snap, base)
		if len(tips) == 0 {
			continue
		}
		if _, err := maintainer.EnsureMergeBranch(ctx, base, tips); err != nil {
			return err
		}
	}

	rc.Splog.Info("Fetched wip refs from %d remote(s)", len(remotes))
	return nil
}
