package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwip.dev/gitwip/internal/workflow"
	"gitwip.dev/gitwip/testhelpers"
)

func TestRmDeletesCurrentWipBranch(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)
	ctx := context.Background()

	require.NoError(t, workflow.Checkout(ctx, rc, "main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("abandoned", "x"))

	require.NoError(t, workflow.Rm(ctx, rc, workflow.RmOptions{}))

	testhelpers.ExpectCurrentBranch(t, scene.Repo, "main")
	testhelpers.ExpectBranches(t, scene.Repo, []string{"main"})
}

func TestRmRemoteDeletesOnRemote(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)
	ctx := context.Background()

	require.NoError(t, workflow.Checkout(ctx, rc, "main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("abandoned", "x"))
	require.NoError(t, workflow.Push(ctx, rc))
	testhelpers.ExpectRemoteBranches(t, scene.Remote, []string{ownBranch, "wip/main/MERGE"})

	opts := workflow.RmOptions{
		Remote:  true,
		Confirm: func(string) (bool, error) { return true, nil },
	}
	require.NoError(t, workflow.Rm(ctx, rc, opts))

	testhelpers.ExpectBranches(t, scene.Repo, []string{"main", "wip/main/MERGE"})
	testhelpers.ExpectRemoteBranches(t, scene.Remote, []string{"wip/main/MERGE"})
}

func TestRmDeclinedConfirmKeepsRemote(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	rc := newContext(t, scene)
	ctx := context.Background()

	require.NoError(t, workflow.Checkout(ctx, rc, "main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("abandoned", "x"))
	require.NoError(t, workflow.Push(ctx, rc))

	opts := workflow.RmOptions{
		Remote:  true,
		Confirm: func(string) (bool, error) { return false, nil },
	}
	require.NoError(t, workflow.Rm(ctx, rc, opts))

	testhelpers.ExpectRemoteBranches(t, scene.Remote, []string{ownBranch, "wip/main/MERGE"})
}
