package wip

import (
	"context"
	"sort"
)

// RefLister is the one-shot ref read the snapshot consumes
type RefLister interface {
	ListRefs(ctx context.Context, prefix string) (map[string]string, error)
}

// Snapshot reads all refs once and returns the WIP refs keyed by ref path.
// Non-WIP refs are discarded. If remoteFilter is non-empty, remote WIP refs
// belonging to other remotes are discarded as well.
func Snapshot(ctx context.Context, g RefLister, remoteFilter string) (map[string]WipRef, error) {
	raw, err := g.ListRefs(ctx, "")
	if err != nil {
		return nil, err
	}

	refs := make(map[string]WipRef)
	for refPath, sha := range raw {
		ref, ok := ClassifyRef(refPath, sha)
		if !ok {
			continue
		}
		if remoteFilter != "" && ref.Remote != "" && ref.Remote != remoteFilter {
			continue
		}
		refs[refPath] = ref
	}
	return refs, nil
}

// Bases returns the sorted base branch names present in a snapshot
func Bases(snap map[string]WipRef) []string {
	seen := make(map[string]bool)
	var bases []string
	for _, ref := range snap {
		if !seen[ref.Wip.Base] {
			seen[ref.Wip.Base] = true
			bases = append(bases, ref.Wip.Base)
		}
	}
	sort.Strings(bases)
	return bases
}

// LocalWipRefs returns the local non-merge WIP refs for a base, sorted by
// branch name
func LocalWipRefs(snap map[string]WipRef, base string) []WipRef {
	var refs []WipRef
	for _, ref := range snap {
		if ref.IsLocal() && !ref.Wip.IsMerge() && ref.Wip.Base == base {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].BranchName() < refs[j].BranchName()
	})
	return refs
}

// RemoteWipRefs returns the remote non-merge WIP refs for a base, sorted by
// remote then branch name
func RemoteWipRefs(snap map[string]WipRef, base string) []WipRef {
	var refs []WipRef
	for _, ref := range snap {
		if !ref.IsLocal() && !ref.Wip.IsMerge() && ref.Wip.Base == base {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Remote != refs[j].Remote {
			return refs[i].Remote < refs[j].Remote
		}
		return refs[i].BranchName() < refs[j].BranchName()
	})
	return refs
}

// RemoteMergeTips returns the per-remote merge-branch tips for a base
func RemoteMergeTips(snap map[string]WipRef, base string) map[string]string {
	tips := make(map[string]string)
	for _, ref := range snap {
		if !ref.IsLocal() && ref.Wip.IsMerge() && ref.Wip.Base == base {
			tips[ref.Remote] = ref.SHA
		}
	}
	return tips
}
