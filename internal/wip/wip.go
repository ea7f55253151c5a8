package wip

import (
	"strings"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
)

// BranchPrefix is the namespace all WIP branches live under
const BranchPrefix = "wip/"

// Reserved owner sentinels in the ref naming scheme
const (
	headSentinel  = "HEAD"
	mergeSentinel = "MERGE"
)

// Role distinguishes the kinds of WIP branch. Owned branches carry a machine
// owner id; head- and merge-tracking branches are per-base singletons.
type Role int

const (
	// RoleOwned is a WIP branch created by a specific machine
	RoleOwned Role = iota
	// RoleHead is the current (unqualified) WIP branch for a base
	RoleHead
	// RoleMerge is the merge-tracking audit-log branch for a base
	RoleMerge
)

// Wip identifies a WIP branch: the base branch it checkpoints work against
// and its role. Owner is only meaningful for RoleOwned.
type Wip struct {
	Base  string
	Role  Role
	Owner string
}

// Owned constructs the identity of a machine-owned WIP branch
func Owned(base, owner string) Wip {
	return Wip{Base: base, Role: RoleOwned, Owner: owner}
}

// HeadTracking constructs the identity of the head-tracking WIP branch for a base
func HeadTracking(base string) Wip {
	return Wip{Base: base, Role: RoleHead}
}

// MergeTracking constructs the identity of the merge-tracking branch for a base
func MergeTracking(base string) Wip {
	return Wip{Base: base, Role: RoleMerge}
}

// IsMerge reports whether this is the merge-tracking branch
func (w Wip) IsMerge() bool {
	return w.Role == RoleMerge
}

// IsHead reports whether this is the head-tracking branch
func (w Wip) IsHead() bool {
	return w.Role == RoleHead
}

// BranchName renders the branch name for this identity. Head-tracking
// branches use the bare wip/<base> form; the inverse of ParseWip.
func (w Wip) BranchName() string {
	switch w.Role {
	case RoleMerge:
		return BranchPrefix + w.Base + "/" + mergeSentinel
	case RoleHead:
		return BranchPrefix + w.Base
	default:
		return BranchPrefix + w.Base + "/" + w.Owner
	}
}

// ParseWip splits a WIP branch name into its identity.
// wip/<base> is head-tracking; the last path segment of wip/<base>/<owner>
// is the owner, with the HEAD and MERGE sentinels mapping to their roles.
func ParseWip(branchName string) (Wip, error) {
	rest, ok := strings.CutPrefix(branchName, BranchPrefix)
	if !ok || rest == "" {
		return Wip{}, gitwiperrors.NewMalformedWipBranchError(branchName)
	}

	idx := strings.LastIndex(rest, "/")
	if idx < 0 {
		return HeadTracking(rest), nil
	}

	base, owner := rest[:idx], rest[idx+1:]
	if base == "" || owner == "" {
		return Wip{}, gitwiperrors.NewMalformedWipBranchError(branchName)
	}

	switch owner {
	case mergeSentinel:
		return MergeTracking(base), nil
	case headSentinel:
		return HeadTracking(base), nil
	default:
		return Owned(base, owner), nil
	}
}

// IsWipBranch reports whether a branch name is in the WIP namespace
func IsWipBranch(branchName string) bool {
	return strings.HasPrefix(branchName, BranchPrefix)
}
