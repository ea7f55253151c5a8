package git

import (
	"context"
	"fmt"
)

// ConfiguredRemotes returns the names of all configured remotes
func (g *Git) ConfiguredRemotes(ctx context.Context) ([]string, error) {
	lines, err := g.runner.RunLines(ctx, "remote")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return lines, nil
}

// Fetch fetches from a remote with an explicit refspec
func (g *Git) Fetch(ctx context.Context, remote, refspec string) error {
	if _, err := g.runner.Run(ctx, "fetch", remote, refspec); err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}
	return nil
}

// Push pushes refspecs to a remote. Force pushes must be issued in their own
// invocation, never mixed with fast-forward pushes.
func (g *Git) Push(ctx context.Context, remote string, force bool, refspecs ...string) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote)
	args = append(args, refspecs...)
	if _, err := g.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to push to %s: %w", remote, err)
	}
	return nil
}
