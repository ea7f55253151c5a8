package git

import (
	"context"
	"fmt"
	"strings"
)

// ListRefs lists all refs under a prefix in one consistent read, returning a
// map from full ref path to commit sha. An empty prefix lists every ref.
func (g *Git) ListRefs(ctx context.Context, prefix string) (map[string]string, error) {
	args := []string{"for-each-ref", "--format=%(objectname) %(refname)"}
	if prefix != "" {
		args = append(args, prefix)
	}
	lines, err := g.runner.RunLines(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}

	refs := make(map[string]string, len(lines))
	for _, line := range lines {
		sha, ref, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		refs[ref] = sha
	}
	return refs, nil
}

// GetRef resolves a ref path to a sha. The second return is false if the ref
// does not exist.
func (g *Git) GetRef(ctx context.Context, name string) (string, bool, error) {
	sha, err := g.runner.Run(ctx, "rev-parse", "--verify", "--quiet", name)
	if err != nil {
		// rev-parse --verify --quiet exits nonzero for missing refs
		return "", false, nil
	}
	return sha, true, nil
}

// ResolveRevision resolves a commitish to a full commit id
func (g *Git) ResolveRevision(ctx context.Context, rev string) (string, error) {
	sha, err := g.runner.Run(ctx, "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	return sha, nil
}

// UpdateRef points a ref at a commit, creating it if absent
func (g *Git) UpdateRef(ctx context.Context, name, sha string) error {
	if _, err := g.runner.Run(ctx, "update-ref", name, sha); err != nil {
		return fmt.Errorf("failed to update ref %s: %w", name, err)
	}
	return nil
}

// DeleteRef deletes a ref
func (g *Git) DeleteRef(ctx context.Context, name string) error {
	if _, err := g.runner.Run(ctx, "update-ref", "-d", name); err != nil {
		return fmt.Errorf("failed to delete ref %s: %w", name, err)
	}
	return nil
}
