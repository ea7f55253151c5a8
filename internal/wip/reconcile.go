package wip

import (
	"context"
	"sort"
)

// PushSpec is an intent to update one remote ref. An empty Src encodes
// deletion of the destination branch on the remote.
type PushSpec struct {
	Src    string
	Dst    string
	Remote string
	Force  bool
}

// IsDelete reports whether this spec deletes the destination branch
func (p PushSpec) IsDelete() bool {
	return p.Src == ""
}

// Refspec renders the spec in git push refspec syntax
func (p PushSpec) Refspec() string {
	if p.IsDelete() {
		return ":" + localRefPrefix + p.Dst
	}
	return localRefPrefix + p.Src + ":" + localRefPrefix + p.Dst
}

// Engine computes which local WIP state must be projected to which remotes,
// and which abandoned remote state should be deleted. One Engine serves one
// reconciliation pass over one snapshot; durable state lives in the ref store.
type Engine struct {
	git        Facade
	maintainer *Maintainer
	owner      string
	remotes    []string
	pruneStale bool
}

// NewEngine creates a reconciliation engine. remotes is the ordered list of
// target remotes; pruneStale enables deletion proposals for remote WIP refs
// this machine owns that no longer exist locally.
func NewEngine(g Facade, owner string, remotes []string, policy DivergencePolicy, pruneStale bool) *Engine {
	return &Engine{
		git:        g,
		maintainer: NewMaintainer(g, policy),
		owner:      owner,
		remotes:    remotes,
		pruneStale: pruneStale,
	}
}

// Maintainer returns the merge-branch maintainer this engine reconciles with
func (e *Engine) Maintainer() *Maintainer {
	return e.maintainer
}

// baseState is the per-base partition of a snapshot
type baseState struct {
	locals       []WipRef                     // local non-merge refs, sorted by branch
	localBranch  map[string]bool              // branch name -> present locally
	remoteRefs   map[string]map[string]WipRef // remote -> branch name -> ref (non-merge)
	remoteMerges map[string]string            // remote -> merge branch sha
}

// partition groups a snapshot by base branch
func partition(snap map[string]WipRef) map[string]*baseState {
	bases := make(map[string]*baseState)
	for _, ref := range snap {
		state := bases[ref.Wip.Base]
		if state == nil {
			state = &baseState{
				localBranch:  make(map[string]bool),
				remoteRefs:   make(map[string]map[string]WipRef),
				remoteMerges: make(map[string]string),
			}
			bases[ref.Wip.Base] = state
		}

		switch {
		case ref.IsLocal() && ref.Wip.IsMerge():
			// tracked implicitly via GetRef in the maintainer
		case ref.IsLocal():
			state.locals = append(state.locals, ref)
			state.localBranch[ref.BranchName()] = true
		case ref.Wip.IsMerge():
			state.remoteMerges[ref.Remote] = ref.SHA
		default:
			byBranch := state.remoteRefs[ref.Remote]
			if byBranch == nil {
				byBranch = make(map[string]WipRef)
				state.remoteRefs[ref.Remote] = byBranch
			}
			byBranch[ref.BranchName()] = ref
		}
	}

	for _, state := range bases {
		sort.Slice(state.locals, func(i, j int) bool {
			return state.locals[i].BranchName() < state.locals[j].BranchName()
		})
	}
	return bases
}

// Reconcile computes the ordered list of push and delete operations needed to
// project the snapshot's local WIP state onto the target remotes. The local
// merge branch for every base is brought up to date as a side effect. No two
// returned specs share a destination on the same remote.
func (e *Engine) Reconcile(ctx context.Context, snap map[string]WipRef) ([]PushSpec, error) {
	bases := partition(snap)

	baseNames := make([]string, 0, len(bases))
	for base := range bases {
		baseNames = append(baseNames, base)
	}
	sort.Strings(baseNames)

	var specs []PushSpec
	for _, base := range baseNames {
		baseSpecs, err := e.reconcileBase(ctx, base, bases[base])
		if err != nil {
			return nil, err
		}
		specs = append(specs, baseSpecs...)
	}
	return specs, nil
}

func (e *Engine) reconcileBase(ctx context.Context, base string, state *baseState) ([]PushSpec, error) {
	var specs []PushSpec

	for _, remote := range e.remotes {
		for _, local := range state.locals {
			branch := local.BranchName()
			remoteRef, ok := state.remoteRefs[remote][branch]
			if !ok {
				specs = append(specs, PushSpec{Src: branch, Dst: branch, Remote: remote})
				continue
			}
			if remoteRef.SHA == local.SHA {
				continue
			}
			// Force only when local history rewrote rather than extended the
			// remote: the remote tip is no longer an ancestor of ours.
			fastForward, err := e.git.IsAncestor(ctx, remoteRef.SHA, local.SHA)
			if err != nil {
				return nil, err
			}
			specs = append(specs, PushSpec{Src: branch, Dst: branch, Remote: remote, Force: !fastForward})
		}

		if e.pruneStale {
			specs = append(specs, e.staleDeletes(remote, state)...)
		}
	}

	mergeSpecs, err := e.reconcileMergeBranch(ctx, base, state)
	if err != nil {
		return nil, err
	}
	return append(specs, mergeSpecs...), nil
}

// staleDeletes proposes deletion of this machine's remote WIP refs whose
// local branch is gone. Refs owned by other machines are never touched.
func (e *Engine) staleDeletes(remote string, state *baseState) []PushSpec {
	byBranch := state.remoteRefs[remote]

	branches := make([]string, 0, len(byBranch))
	for branch := range byBranch {
		branches = append(branches, branch)
	}
	sort.Strings(branches)

	var specs []PushSpec
	for _, branch := range branches {
		ref := byBranch[branch]
		if state.localBranch[branch] {
			continue
		}
		if ref.Wip.Role == RoleOwned && ref.Wip.Owner != e.owner {
			continue
		}
		specs = append(specs, PushSpec{Dst: branch, Remote: remote})
	}
	return specs
}

func (e *Engine) reconcileMergeBranch(ctx context.Context, base string, state *baseState) ([]PushSpec, error) {
	final, err := e.maintainer.EnsureMergeBranch(ctx, base, state.remoteMerges)
	if err != nil {
		return nil, err
	}

	branch := MergeTracking(base).BranchName()
	var specs []PushSpec
	for _, remote := range e.remotes {
		if state.remoteMerges[remote] == final {
			continue
		}
		// After reconciliation every remote tip is an ancestor of final, so
		// a plain fast-forward push suffices.
		specs = append(specs, PushSpec{Src: branch, Dst: branch, Remote: remote})
	}
	return specs, nil
}
