package wip

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	"gitwip.dev/gitwip/internal/git"
)

// memGit is an in-memory Facade backed by go-git's memory storage. Commits
// are real git objects so ancestry behaves exactly like on-disk history.
type memGit struct {
	st    *memory.Storage
	refs  map[string]string
	clock time.Time
}

var _ Facade = (*memGit)(nil)

func newMemGit(t *testing.T) *memGit {
	t.Helper()

	st := memory.NewStorage()

	obj := st.NewEncodedObject()
	obj.SetType(plumbing.TreeObject)
	hash, err := st.SetEncodedObject(obj)
	require.NoError(t, err)
	require.Equal(t, git.EmptyTreeSHA, hash.String())

	return &memGit{
		st:    st,
		refs:  make(map[string]string),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// commit creates a commit on the empty tree and returns its sha
func (m *memGit) commit(t *testing.T, message string, parents ...string) string {
	t.Helper()
	sha, err := m.CreateCommit(context.Background(), git.EmptyTreeSHA, parents, message)
	require.NoError(t, err)
	return sha
}

func (m *memGit) setRef(name, sha string) {
	m.refs[name] = sha
}

func (m *memGit) ListRefs(_ context.Context, prefix string) (map[string]string, error) {
	out := make(map[string]string)
	for name, sha := range m.refs {
		if strings.HasPrefix(name, prefix) {
			out[name] = sha
		}
	}
	return out, nil
}

func (m *memGit) GetRef(_ context.Context, name string) (string, bool, error) {
	sha, ok := m.refs[name]
	return sha, ok, nil
}

func (m *memGit) UpdateRef(_ context.Context, name, sha string) error {
	m.refs[name] = sha
	return nil
}

func (m *memGit) IsAncestor(_ context.Context, ancestor, descendant string) (bool, error) {
	if ancestor == descendant {
		return true, nil
	}
	ancestorCommit, err := object.GetCommit(m.st, plumbing.NewHash(ancestor))
	if err != nil {
		return false, err
	}
	descendantCommit, err := object.GetCommit(m.st, plumbing.NewHash(descendant))
	if err != nil {
		return false, err
	}
	return ancestorCommit.IsAncestor(descendantCommit)
}

func (m *memGit) CreateCommit(_ context.Context, tree string, parents []string, message string) (string, error) {
	m.clock = m.clock.Add(time.Second)
	sig := object.Signature{Name: "Test User", Email: "test@example.com", When: m.clock}

	parentHashes := make([]plumbing.Hash, 0, len(parents))
	for _, p := range parents {
		parentHashes = append(parentHashes, plumbing.NewHash(p))
	}

	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     plumbing.NewHash(tree),
		ParentHashes: parentHashes,
	}

	obj := m.st.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return "", err
	}
	hash, err := m.st.SetEncodedObject(obj)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

func (m *memGit) CommitInfo(_ context.Context, sha string) (string, []string, error) {
	commit, err := object.GetCommit(m.st, plumbing.NewHash(sha))
	if err != nil {
		return "", nil, err
	}
	parents := make([]string, 0, len(commit.ParentHashes))
	for _, p := range commit.ParentHashes {
		parents = append(parents, p.String())
	}
	return commit.Message, parents, nil
}
