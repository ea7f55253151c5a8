package wip

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
)

const mergeRefMain = "refs/heads/wip/main/MERGE"

func TestEnsureMergeBranchCreatesRoot(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	sha, err := m.EnsureMergeBranch(ctx, "main", nil)
	require.NoError(t, err)

	tip, exists, err := g.GetRef(ctx, mergeRefMain)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, sha, tip)

	message, parents, err := g.CommitInfo(ctx, sha)
	require.NoError(t, err)
	assert.Empty(t, parents)
	assert.JSONEq(t, "{}", message)
}

func TestEnsureMergeBranchIsIdempotent(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	first, err := m.EnsureMergeBranch(ctx, "main", nil)
	require.NoError(t, err)
	second, err := m.EnsureMergeBranch(ctx, "main", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsureMergeBranchAdoptsRemoteTip(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	remoteTip := g.commit(t, "{}\n")
	sha, err := m.EnsureMergeBranch(ctx, "main", map[string]string{"origin": remoteTip})
	require.NoError(t, err)
	assert.Equal(t, remoteTip, sha)

	tip, exists, _ := g.GetRef(ctx, mergeRefMain)
	require.True(t, exists)
	assert.Equal(t, remoteTip, tip)
}

func TestEnsureMergeBranchFastForwardsToRemote(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	root := g.commit(t, "{}\n")
	g.setRef(mergeRefMain, root)
	remoteTip := g.commit(t, `{"commit":"aaa"}`+"\n", root)

	sha, err := m.EnsureMergeBranch(ctx, "main", map[string]string{"origin": remoteTip})
	require.NoError(t, err)
	assert.Equal(t, remoteTip, sha)
}

func TestEnsureMergeBranchKeepsLocalWhenRemoteBehind(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	root := g.commit(t, "{}\n")
	local := g.commit(t, `{"commit":"aaa"}`+"\n", root)
	g.setRef(mergeRefMain, local)

	sha, err := m.EnsureMergeBranch(ctx, "main", map[string]string{"origin": root})
	require.NoError(t, err)
	assert.Equal(t, local, sha)
}

func TestEnsureMergeBranchJoinsUnrelatedHistories(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	local := g.commit(t, "{}\nlocal root")
	g.setRef(mergeRefMain, local)
	remote := g.commit(t, "{}\nremote root")

	sha, err := m.EnsureMergeBranch(ctx, "main", map[string]string{"origin": remote})
	require.NoError(t, err)
	assert.NotEqual(t, local, sha)
	assert.NotEqual(t, remote, sha)

	localReachable, err := g.IsAncestor(ctx, local, sha)
	require.NoError(t, err)
	assert.True(t, localReachable)
	remoteReachable, err := g.IsAncestor(ctx, remote, sha)
	require.NoError(t, err)
	assert.True(t, remoteReachable)

	tip, _, _ := g.GetRef(ctx, mergeRefMain)
	assert.Equal(t, sha, tip)
}

func TestEnsureMergeBranchFailPolicyRejectsDivergence(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyFail)

	local := g.commit(t, "{}\nlocal root")
	g.setRef(mergeRefMain, local)
	remote := g.commit(t, "{}\nremote root")

	_, err := m.EnsureMergeBranch(ctx, "main", map[string]string{"origin": remote})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gitwiperrors.ErrDivergedMergeBranch))
}

func TestRecordMergeAppendsAuditRecord(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	merged := g.commit(t, "WIP (uncommitted)")
	tip, err := m.RecordMerge(ctx, "main", merged, "bbb222")
	require.NoError(t, err)

	message, parents, err := g.CommitInfo(ctx, tip)
	require.NoError(t, err)
	require.Len(t, parents, 2)
	assert.Equal(t, merged, parents[1])
	assert.JSONEq(t, fmt.Sprintf(`{"commit":%q,"merge":"bbb222"}`, merged), message)

	// The implicit root is structural and carries no commit key
	rootMessage, rootParents, err := g.CommitInfo(ctx, parents[0])
	require.NoError(t, err)
	assert.Empty(t, rootParents)
	assert.JSONEq(t, "{}", rootMessage)
}

func TestRecordMergeMakesMergedTipAnAncestor(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	merged := g.commit(t, "WIP (uncommitted)")
	tip, err := m.RecordMerge(ctx, "main", merged, "")
	require.NoError(t, err)

	contained, err := g.IsAncestor(ctx, merged, tip)
	require.NoError(t, err)
	assert.True(t, contained, "folded tip must be reachable from the merge branch")
}

func TestWalkAuditLogNewestFirst(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	first := g.commit(t, "first work")
	second := g.commit(t, "second work")
	_, err := m.RecordMerge(ctx, "main", first, "r1")
	require.NoError(t, err)
	_, err = m.RecordMerge(ctx, "main", second, "r2")
	require.NoError(t, err)

	var seen []string
	err = m.WalkAuditLog(ctx, "main", func(rec AuditRecord) (bool, error) {
		seen = append(seen, rec.Commit)
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{second, first}, seen)
}

func TestWalkAuditLogStopsEarly(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	first := g.commit(t, "first work")
	second := g.commit(t, "second work")
	_, err := m.RecordMerge(ctx, "main", first, "")
	require.NoError(t, err)
	_, err = m.RecordMerge(ctx, "main", second, "")
	require.NoError(t, err)

	var seen []string
	err = m.WalkAuditLog(ctx, "main", func(rec AuditRecord) (bool, error) {
		seen = append(seen, rec.Commit)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{second}, seen)
}

func TestWalkAuditLogCoversJoinedHistories(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	// Two machines recorded merges on unrelated roots, then joined
	localRoot := g.commit(t, "{}\nlocal")
	localRec := g.commit(t, `{"commit":"aaa"}`+"\n", localRoot)
	g.setRef(mergeRefMain, localRec)

	remoteRoot := g.commit(t, "{}\nremote")
	remoteRec := g.commit(t, `{"commit":"bbb"}`+"\n", remoteRoot)

	_, err := m.EnsureMergeBranch(ctx, "main", map[string]string{"origin": remoteRec})
	require.NoError(t, err)

	seen := map[string]bool{}
	err = m.WalkAuditLog(ctx, "main", func(rec AuditRecord) (bool, error) {
		seen[rec.Commit] = true
		return false, nil
	})
	require.NoError(t, err)
	assert.True(t, seen["aaa"])
	assert.True(t, seen["bbb"])
}

func TestWalkAuditLogMissingBranchIsEmpty(t *testing.T) {
	ctx := context.Background()
	g := newMemGit(t)
	m := NewMaintainer(g, PolicyAutoJoin)

	called := false
	err := m.WalkAuditLog(ctx, "nope", func(AuditRecord) (bool, error) {
		called = true
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}
