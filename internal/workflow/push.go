package workflow

import (
	"context"

	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// Push reconciles the snapshot against the candidate remotes and pushes the
// resulting specs, grouped so force pushes are issued in their own
// invocations. A re-fetch afterwards reconciles the local remote-tracking
// refs with what the remotes actually accepted.
func Push(ctx context.Context, rc *runtime.Context) error {
	if rc.Offline {
		rc.Splog.Debug("offline: skipping push")
		return nil
	}

	remotes, err := rc.RequireRemotes()
	if err != nil {
		return err
	}

	snap, err := wip.Snapshot(ctx, rc.Git, rc.RemoteFilter)
	if err != nil {
		return err
	}

	specs, err := rc.Engine().Reconcile(ctx, snap)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		rc.Splog.Info("Nothing to push")
		return nil
	}

	// Group by remote and force bit; force pushes never share an invocation
	// with fast-forward pushes.
	type group struct{ plain, forced []string }
	groups := make(map[string]*group, len(remotes))
	for _, remote := range remotes {
		groups[remote] = &group{}
	}
	for _, spec := range specs {
		g, ok := groups[spec.Remote]
		if !ok {
			continue
		}
		if spec.Force {
			g.forced = append(g.forced, spec.Refspec())
		} else {
			g.plain = append(g.plain, spec.Refspec())
		}
	}

	for _, remote := range remotes {
		g := groups[remote]
		if len(g.plain) > 0 {
			if err := rc.Git.Push(ctx, remote, false, g.plain...); err != nil {
				return err
			}
		}
		if len(g.forced) > 0 {
			if err := rc.Git.Push(ctx, remote, true, g.forced...); err != nil {
				return err
			}
		}
	}
	rc.Splog.Info("Pushed %d ref update(s)", len(specs))

	return Fetch(ctx, rc)
}
