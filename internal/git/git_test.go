package git_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitwip.dev/gitwip/internal/git"
	"gitwip.dev/gitwip/testhelpers"
)

func openScene(t *testing.T) (*testhelpers.Scene, *git.Git) {
	t.Helper()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	g, err := git.Open(scene.Dir)
	require.NoError(t, err)
	return scene, g
}

func TestOpenDetectsRepositoryRoot(t *testing.T) {
	scene, g := openScene(t)
	assert.Equal(t, scene.Dir, g.Root())
}

func TestCurrentBranch(t *testing.T) {
	scene, g := openScene(t)
	ctx := context.Background()

	branch, err := g.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	branch, err = g.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "feature", branch)
}

func TestListRefsAndGetRef(t *testing.T) {
	scene, g := openScene(t)
	ctx := context.Background()

	head := testhelpers.Must(scene.Repo.RevParse("HEAD"))

	refs, err := g.ListRefs(ctx, "refs/heads/")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"refs/heads/main": head}, refs)

	sha, exists, err := g.GetRef(ctx, "refs/heads/main")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, head, sha)

	_, exists, err = g.GetRef(ctx, "refs/heads/nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateAndDeleteRef(t *testing.T) {
	scene, g := openScene(t)
	ctx := context.Background()

	head := testhelpers.Must(scene.Repo.RevParse("HEAD"))

	require.NoError(t, g.UpdateRef(ctx, "refs/heads/wip/main/testbox", head))
	sha, exists, err := g.GetRef(ctx, "refs/heads/wip/main/testbox")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, head, sha)

	require.NoError(t, g.DeleteRef(ctx, "refs/heads/wip/main/testbox"))
	_, exists, _ = g.GetRef(ctx, "refs/heads/wip/main/testbox")
	assert.False(t, exists)
}

func TestIsAncestor(t *testing.T) {
	scene, g := openScene(t)
	ctx := context.Background()

	first := testhelpers.Must(scene.Repo.RevParse("HEAD"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("2", "2"))
	second := testhelpers.Must(scene.Repo.RevParse("HEAD"))

	ok, err := g.IsAncestor(ctx, first, second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.IsAncestor(ctx, second, first)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.IsAncestor(ctx, first, first)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateCommitOnEmptyTree(t *testing.T) {
	_, g := openScene(t)
	ctx := context.Background()

	root, err := g.CreateCommit(ctx, git.EmptyTreeSHA, nil, "{}\n")
	require.NoError(t, err)

	message, parents, err := g.CommitInfo(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, parents)
	assert.Equal(t, "{}", strings.TrimSpace(message))

	child, err := g.CreateCommit(ctx, git.EmptyTreeSHA, []string{root}, `{"commit":"abc"}`)
	require.NoError(t, err)

	_, parents, err = g.CommitInfo(ctx, child)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, parents)
}

func TestWorktreeStateQueries(t *testing.T) {
	scene, g := openScene(t)
	ctx := context.Background()

	dirty, err := g.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, scene.Repo.CreateChange("unstaged", "u", true))
	unstaged, err := g.HasUnstagedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, unstaged)
	staged, err := g.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, staged)

	require.NoError(t, g.StageAll(ctx))
	staged, err = g.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, staged)

	require.NoError(t, g.Commit(ctx, "checkpoint"))
	dirty, err = g.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestBranchLifecycle(t *testing.T) {
	_, g := openScene(t)
	ctx := context.Background()

	assert.False(t, g.BranchExists(ctx, "wip/main/testbox"))
	require.NoError(t, g.CreateBranch(ctx, "wip/main/testbox", "main"))
	assert.True(t, g.BranchExists(ctx, "wip/main/testbox"))

	require.NoError(t, g.CheckoutBranch(ctx, "wip/main/testbox"))
	branch, err := g.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "wip/main/testbox", branch)

	require.NoError(t, g.CheckoutBranch(ctx, "main"))
	require.NoError(t, g.DeleteBranch(ctx, "wip/main/testbox"))
	assert.False(t, g.BranchExists(ctx, "wip/main/testbox"))
}

func TestPushAndFetchRoundTrip(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	g, err := git.Open(scene.Dir)
	require.NoError(t, err)
	ctx := context.Background()

	head := testhelpers.Must(scene.Repo.RevParse("HEAD"))
	require.NoError(t, g.CreateBranch(ctx, "wip/main/testbox", "main"))

	require.NoError(t, g.Push(ctx, "origin", false, "refs/heads/wip/main/testbox:refs/heads/wip/main/testbox"))
	testhelpers.ExpectRemoteBranches(t, scene.Remote, []string{"wip/main/testbox"})

	require.NoError(t, g.Fetch(ctx, "origin", "+refs/heads/wip/*:refs/remotes/origin/wip/*"))
	sha, exists, err := g.GetRef(ctx, "refs/remotes/origin/wip/main/testbox")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, head, sha)

	// Deleting via an empty source refspec
	require.NoError(t, g.Push(ctx, "origin", false, ":refs/heads/wip/main/testbox"))
	testhelpers.ExpectRemoteBranches(t, scene.Remote, nil)
}

func TestMergeConflictDetection(t *testing.T) {
	scene, g := openScene(t)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("side"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("side version", "1"))
	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("main version", "1"))

	result, err := g.Merge(ctx, "merge side", "side")
	require.NoError(t, err)
	require.Equal(t, git.MergeConflict, result)
	assert.True(t, g.IsMergeInProgress(ctx))

	require.NoError(t, scene.Repo.ResolveMergeConflicts())
	require.NoError(t, scene.Repo.MarkMergeConflictsAsResolved())
	require.NoError(t, g.MergeContinue(ctx))
	assert.False(t, g.IsMergeInProgress(ctx))
}
