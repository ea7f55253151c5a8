package git

import (
	"context"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Git is the VCS facade. Ref and working-tree mutations go through the git
// CLI so hooks and transport behave exactly as the user's git does; read-side
// object queries (ancestry, commit info) use go-git.
type Git struct {
	runner *CommandRunner
	repo   *gogit.Repository
	root   string
}

// Open opens the repository containing dir and returns a facade for it
func Open(dir string) (*Git, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	root := absPath
	if worktree, err := repo.Worktree(); err == nil {
		root = worktree.Filesystem.Root()
	}

	return &Git{
		runner: NewCommandRunner(root),
		repo:   repo,
		root:   root,
	}, nil
}

// Root returns the root directory of the repository
func (g *Git) Root() string {
	return g.root
}

// RunGitCommand executes a raw git command in the repository.
// Escape hatch for callers that need output formats the facade does not model.
func (g *Git) RunGitCommand(ctx context.Context, args ...string) (string, error) {
	return g.runner.Run(ctx, args...)
}

// RunGitCommandRaw executes a raw git command and returns untrimmed output
func (g *Git) RunGitCommandRaw(ctx context.Context, args ...string) (string, error) {
	return g.runner.RunRaw(ctx, args...)
}
