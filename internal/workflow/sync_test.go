package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/workflow"
	"gitwip.dev/gitwip/testhelpers"
)

func TestFetchWithoutRemotes(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)

	err := workflow.Fetch(context.Background(), rc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gitwiperrors.ErrNoRemotesConfigured))
}

func TestFetchOfflineIsANoOp(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	rc := newContextWithOptions(t, scene, runtime.Options{Offline: true})

	require.NoError(t, workflow.Fetch(context.Background(), rc))
}

func TestPushPublishesWipState(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateChange("draft", "draft", true))
	require.NoError(t, workflow.Save(ctx, rc))
	require.NoError(t, workflow.Push(ctx, rc))

	testhelpers.ExpectRemoteBranches(t, scene.Remote, []string{ownBranch, "wip/main/MERGE"})

	// The trailing fetch materialized the remote-tracking view
	sha, exists, err := rc.Git.GetRef(ctx, "refs/remotes/origin/"+ownBranch)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, testhelpers.Must(scene.Repo.RevParse(ownBranch)), sha)
}

func TestPushWithNothingToPush(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)

	require.NoError(t, workflow.Push(context.Background(), rc))
	testhelpers.ExpectRemoteBranches(t, scene.Remote, nil)
}

func TestPushIsIdempotent(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateChange("draft", "draft", true))
	require.NoError(t, workflow.Save(ctx, rc))
	require.NoError(t, workflow.Push(ctx, rc))
	require.NoError(t, workflow.Push(ctx, rc))

	testhelpers.ExpectRemoteBranches(t, scene.Remote, []string{ownBranch, "wip/main/MERGE"})
}

func TestSyncCheckpointsAndPushes(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateChange("draft", "draft", true))
	require.NoError(t, workflow.Sync(ctx, rc))

	testhelpers.ExpectCurrentBranch(t, scene.Repo, ownBranch)
	testhelpers.ExpectRemoteBranches(t, scene.Remote, []string{ownBranch, "wip/main/MERGE"})

	dirty, err := rc.Git.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestSyncWithCleanTreeStillPushes(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)
	ctx := context.Background()

	require.NoError(t, workflow.Checkout(ctx, rc, "main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("committed work", "w"))

	require.NoError(t, workflow.Sync(ctx, rc))
	testhelpers.ExpectRemoteBranches(t, scene.Remote, []string{ownBranch, "wip/main/MERGE"})
}

func TestPullMergesFetchedState(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)
	ctx := context.Background()

	// A local WIP branch must exist for update to consider the base
	require.NoError(t, workflow.Checkout(ctx, rc, "main"))

	// Publish another machine's work straight to the remote
	require.NoError(t, scene.Repo.RunGitCommand("checkout", "-b", "tmp", "main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("other machine", "other"))
	otherTip := testhelpers.Must(scene.Repo.RevParse("HEAD"))
	require.NoError(t, scene.Repo.RunGitCommand("push", "origin", "tmp:wip/main/otherbox"))
	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.DeleteBranch("tmp"))

	require.NoError(t, workflow.Pull(ctx, rc))

	contained, err := rc.Git.IsAncestor(ctx, otherTip, ownBranch)
	require.NoError(t, err)
	assert.True(t, contained)
}
