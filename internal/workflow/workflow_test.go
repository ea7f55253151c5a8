package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwip.dev/gitwip/internal/git"
	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/testhelpers"
)

// ownBranch is the own-WIP branch for main under the scene's pinned owner
const ownBranch = "wip/main/" + testhelpers.TestOwner

func newContext(t *testing.T, scene *testhelpers.Scene) *runtime.Context {
	t.Helper()
	return newContextWithOptions(t, scene, runtime.Options{})
}

func newContextWithOptions(t *testing.T, scene *testhelpers.Scene, opts runtime.Options) *runtime.Context {
	t.Helper()
	g, err := git.Open(scene.Dir)
	require.NoError(t, err)
	rc, err := runtime.NewContext(context.Background(), g, opts)
	require.NoError(t, err)
	return rc
}
