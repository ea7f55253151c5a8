package wip

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/git"
)

// Facade is the slice of the VCS surface the engine and merge-branch
// maintainer consume.
type Facade interface {
	RefLister
	GetRef(ctx context.Context, name string) (string, bool, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	CreateCommit(ctx context.Context, tree string, parents []string, message string) (string, error)
	UpdateRef(ctx context.Context, name, sha string) error
	CommitInfo(ctx context.Context, sha string) (string, []string, error)
}

// DivergencePolicy selects how unrelated local/remote merge-branch histories
// are reconciled.
type DivergencePolicy int

const (
	// PolicyFail treats divergence as fatal, requiring manual intervention
	PolicyFail DivergencePolicy = iota
	// PolicyAutoJoin fabricates a two-parent commit joining both histories
	PolicyAutoJoin
)

// AuditRecord is one entry of the merge branch's append-only log, serialized
// as a UTF-8 JSON object in the commit message. Commit is the WIP tip that
// was merged; Merge is the resulting base-branch head at merge time.
type AuditRecord struct {
	Commit string `json:"commit,omitempty"`
	Merge  string `json:"merge,omitempty"`
}

func (r AuditRecord) message() string {
	data, _ := json.Marshal(r)
	return string(data) + "\n"
}

// parseAuditRecord decodes a commit message into an audit record.
// Structural commits (roots, joins) carry no commit key and decode to a
// zero record; non-JSON messages report false.
func parseAuditRecord(message string) (AuditRecord, bool) {
	var rec AuditRecord
	if err := json.Unmarshal([]byte(strings.TrimSpace(message)), &rec); err != nil {
		return AuditRecord{}, false
	}
	return rec, true
}

// Maintainer keeps the per-base MERGE branch consistent between local and
// remote views and records which WIP commits have been folded in.
type Maintainer struct {
	git    Facade
	policy DivergencePolicy
}

// NewMaintainer creates a merge-branch maintainer with the given policy
func NewMaintainer(g Facade, policy DivergencePolicy) *Maintainer {
	return &Maintainer{git: g, policy: policy}
}

// EnsureMergeBranch guarantees the local merge branch for base exists and has
// absorbed every known remote merge tip, returning its final sha. If no prior
// state exists anywhere, a fresh root commit on the empty tree is fabricated.
// remoteTips maps remote name to that remote's merge-branch sha.
func (m *Maintainer) EnsureMergeBranch(ctx context.Context, base string, remoteTips map[string]string) (string, error) {
	refPath := localRefPrefix + MergeTracking(base).BranchName()

	current, exists, err := m.git.GetRef(ctx, refPath)
	if err != nil {
		return "", err
	}

	remotes := make([]string, 0, len(remoteTips))
	for remote := range remoteTips {
		remotes = append(remotes, remote)
	}
	sort.Strings(remotes)

	if !exists {
		if len(remotes) == 0 {
			root, err := m.git.CreateCommit(ctx, git.EmptyTreeSHA, nil, AuditRecord{}.message())
			if err != nil {
				return "", err
			}
			if err := m.git.UpdateRef(ctx, refPath, root); err != nil {
				return "", err
			}
			return root, nil
		}
		current = remoteTips[remotes[0]]
		remotes = remotes[1:]
		if err := m.git.UpdateRef(ctx, refPath, current); err != nil {
			return "", err
		}
	}

	final := current
	for _, remote := range remotes {
		next, err := m.ReconcileMerge(ctx, base, final, remoteTips[remote])
		if err != nil {
			return "", err
		}
		final = next
	}

	if final != current {
		if err := m.git.UpdateRef(ctx, refPath, final); err != nil {
			return "", err
		}
	}
	return final, nil
}

// ReconcileMerge combines a local and a remote merge-branch tip. The result
// always has both inputs as ancestors: equal or already-contained tips are
// no-ops, a strictly-ahead remote fast-forwards, and unrelated histories
// either fail or are joined with a fabricated two-parent commit, depending on
// the policy. Idempotent, and never moves the branch backward.
func (m *Maintainer) ReconcileMerge(ctx context.Context, base, localSHA, remoteSHA string) (string, error) {
	if localSHA == remoteSHA || remoteSHA == "" {
		return localSHA, nil
	}
	if localSHA == "" {
		return remoteSHA, nil
	}

	remoteBehind, err := m.git.IsAncestor(ctx, remoteSHA, localSHA)
	if err != nil {
		return "", err
	}
	if remoteBehind {
		return localSHA, nil
	}

	localBehind, err := m.git.IsAncestor(ctx, localSHA, remoteSHA)
	if err != nil {
		return "", err
	}
	if localBehind {
		return remoteSHA, nil
	}

	if m.policy == PolicyFail {
		return "", gitwiperrors.NewDivergedMergeBranchError(base, localSHA, remoteSHA)
	}

	return m.git.CreateCommit(ctx, git.EmptyTreeSHA, []string{localSHA, remoteSHA}, AuditRecord{}.message())
}

// RecordMerge appends an audit record to the merge branch of base, creating
// the branch first if needed, and returns the new merge-branch tip.
// mergedSHA is the WIP tip that was folded in; resultSHA the base head it
// produced (may be empty). The folded tip becomes a parent of the audit
// commit, so containment in the merge branch is an ancestor check and
// already-integrated work is never reprocessed.
func (m *Maintainer) RecordMerge(ctx context.Context, base, mergedSHA, resultSHA string) (string, error) {
	refPath := localRefPrefix + MergeTracking(base).BranchName()

	tip, exists, err := m.git.GetRef(ctx, refPath)
	if err != nil {
		return "", err
	}
	if !exists {
		tip, err = m.EnsureMergeBranch(ctx, base, nil)
		if err != nil {
			return "", err
		}
	}

	parents := []string{tip}
	if mergedSHA != "" && mergedSHA != tip {
		parents = append(parents, mergedSHA)
	}

	rec := AuditRecord{Commit: mergedSHA, Merge: resultSHA}
	next, err := m.git.CreateCommit(ctx, git.EmptyTreeSHA, parents, rec.message())
	if err != nil {
		return "", fmt.Errorf("failed to record merge: %w", err)
	}
	if err := m.git.UpdateRef(ctx, refPath, next); err != nil {
		return "", err
	}
	return next, nil
}

// WalkAuditLog walks the merge branch of base newest-first, calling fn for
// every record that names a merged commit. fn returning true stops the walk
// early. A missing merge branch is an empty log.
func (m *Maintainer) WalkAuditLog(ctx context.Context, base string, fn func(AuditRecord) (bool, error)) error {
	refPath := localRefPrefix + MergeTracking(base).BranchName()

	tip, exists, err := m.git.GetRef(ctx, refPath)
	if err != nil || !exists {
		return err
	}

	queue := []string{tip}
	seen := map[string]bool{tip: true}
	for len(queue) > 0 {
		sha := queue[0]
		queue = queue[1:]

		message, parents, err := m.git.CommitInfo(ctx, sha)
		if err != nil {
			return err
		}

		if rec, ok := parseAuditRecord(message); ok && rec.Commit != "" {
			stop, err := fn(rec)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}

		for _, parent := range parents {
			if !seen[parent] {
				seen[parent] = true
				queue = append(queue, parent)
			}
		}
	}
	return nil
}
