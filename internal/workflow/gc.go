package workflow

import (
	"context"

	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/wip"
)

// GC deletes local WIP branches whose tips the merge branch's audit log
// records as already folded into the base. The log is walked newest-first and
// abandoned as soon as no candidate branches remain unchecked.
func GC(ctx context.Context, rc *runtime.Context) error {
	snap, err := wip.Snapshot(ctx, rc.Git, rc.RemoteFilter)
	if err != nil {
		return err
	}

	currentBranch, _ := rc.Git.CurrentBranch(ctx)

	maintainer := rc.Maintainer()
	deleted := 0
	for _, base := range wip.Bases(snap) {
		candidates := make(map[string][]string) // tip sha -> branch names
		for _, ref := range wip.LocalWipRefs(snap, base) {
			candidates[ref.SHA] = append(candidates[ref.SHA], ref.BranchName())
		}
		if len(candidates) == 0 {
			continue
		}

		err := maintainer.WalkAuditLog(ctx, base, func(rec wip.AuditRecord) (bool, error) {
			branches, ok := candidates[rec.Commit]
			if !ok {
				return false, nil
			}
			delete(candidates, rec.Commit)
			for _, branch := range branches {
				if branch == currentBranch {
					rc.Splog.Warn("not deleting %s: currently checked out", branch)
					continue
				}
				if err := rc.Git.DeleteBranch(ctx, branch); err != nil {
					return false, err
				}
				rc.Splog.Info("Deleted %s (merged)", branch)
				deleted++
			}
			return len(candidates) == 0, nil
		})
		if err != nil {
			return err
		}
	}

	if deleted == 0 {
		rc.Splog.Info("Nothing to collect")
	}
	return nil
}
