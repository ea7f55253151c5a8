// Package testhelpers provides testing utilities for git-wip, including a
// scene system, real git repository helpers, and custom assertions.
package testhelpers

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must panics if err is not nil, otherwise returns the value. Useful in test
// setup code where errors should halt immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected local
// branches, order-insensitively.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("for-each-ref", "refs/heads/", "--format=%(refname:short)")
	require.NoError(t, err, "Failed to list branches")

	var branches []string
	for _, b := range strings.Split(output, "\n") {
		if b = strings.TrimSpace(b); b != "" {
			branches = append(branches, b)
		}
	}

	sort.Strings(branches)
	sorted := append([]string(nil), expected...)
	sort.Strings(sorted)

	require.Equal(t, sorted, branches, "Branches do not match")
}

// ExpectRemoteBranches asserts the branches present on a bare remote
func ExpectRemoteBranches(t *testing.T, remote *GitRepo, expected []string) {
	t.Helper()
	ExpectBranches(t, remote, expected)
}

// ExpectCurrentBranch asserts the checked-out branch
func ExpectCurrentBranch(t *testing.T, repo *GitRepo, expected string) {
	t.Helper()
	current, err := repo.CurrentBranch()
	require.NoError(t, err, "Failed to get current branch")
	require.Equal(t, expected, current)
}
