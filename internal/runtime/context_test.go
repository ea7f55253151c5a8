package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/git"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/testhelpers"
)

func TestNewContextResolvesOwnerFromConfig(t *testing.T) {
	_, rc := newContext(t)
	assert.Equal(t, testhelpers.TestOwner, rc.Owner)
}

func TestRequireRemotesWithNoneConfigured(t *testing.T) {
	_, rc := newContext(t)

	_, err := rc.RequireRemotes()
	require.Error(t, err)
	assert.True(t, errors.Is(err, gitwiperrors.ErrNoRemotesConfigured))
}

func TestNewContextPicksUpConfiguredRemotes(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	g, err := git.Open(scene.Dir)
	require.NoError(t, err)
	rc, err := runtime.NewContext(context.Background(), g, runtime.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"origin"}, rc.Remotes)
}

func TestRemoteFlagOverridesRemotes(t *testing.T) {
	scene := testhelpers.NewSceneWithRemote(t, testhelpers.BasicSceneSetup)
	g, err := git.Open(scene.Dir)
	require.NoError(t, err)
	rc, err := runtime.NewContext(context.Background(), g, runtime.Options{Remote: "backup"})
	require.NoError(t, err)

	assert.Equal(t, []string{"backup"}, rc.Remotes)
	assert.Equal(t, "backup", rc.RemoteFilter)
}

func TestDryRunWrapsTheRunner(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	g, err := git.Open(scene.Dir)
	require.NoError(t, err)
	rc, err := runtime.NewContext(context.Background(), g, runtime.Options{DryRun: true})
	require.NoError(t, err)
	ctx := context.Background()

	// Mutations are logged, not executed
	require.NoError(t, rc.Git.CreateAndCheckoutBranch(ctx, "wip/main/box"))
	testhelpers.ExpectBranches(t, scene.Repo, []string{"main"})

	sha, err := rc.Git.CreateCommit(ctx, git.EmptyTreeSHA, nil, "{}")
	require.NoError(t, err)
	assert.Equal(t, git.DryRunSHA, sha)
}
