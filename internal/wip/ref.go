package wip

import "strings"

const (
	localRefPrefix  = "refs/heads/"
	remoteRefPrefix = "refs/remotes/"
)

// WipRef is a classified WIP ref: an identity, its full ref path and the
// resolved commit id. Remote is empty for local refs. Immutable once
// constructed; updates are observed only by taking a fresh snapshot.
type WipRef struct {
	Wip     Wip
	RefPath string
	SHA     string
	Remote  string
}

// IsLocal reports whether this ref lives in the local branch namespace
func (r WipRef) IsLocal() bool {
	return r.Remote == ""
}

// BranchName returns the branch name this ref tracks (without any
// remote-tracking prefix)
func (r WipRef) BranchName() string {
	return r.Wip.BranchName()
}

// ClassifyRef inspects a (ref path, sha) pair and returns its WIP
// classification, or false if the ref is not a WIP ref at all. Pure.
func ClassifyRef(refPath, sha string) (WipRef, bool) {
	if branch, ok := strings.CutPrefix(refPath, localRefPrefix); ok {
		w, err := ParseWip(branch)
		if err != nil {
			return WipRef{}, false
		}
		return WipRef{Wip: w, RefPath: refPath, SHA: sha}, true
	}

	if rest, ok := strings.CutPrefix(refPath, remoteRefPrefix); ok {
		remote, branch, ok := strings.Cut(rest, "/")
		if !ok || remote == "" {
			return WipRef{}, false
		}
		w, err := ParseWip(branch)
		if err != nil {
			return WipRef{}, false
		}
		return WipRef{Wip: w, RefPath: refPath, SHA: sha, Remote: remote}, true
	}

	return WipRef{}, false
}
