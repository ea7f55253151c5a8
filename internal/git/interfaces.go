package git

import "context"

// Runner defines the interface for git operations used by the workflow and
// reconciliation layers. This allows them to be used with both the real
// facade and test or dry-run implementations.
type Runner interface {
	// Repository
	Root() string
	CurrentBranch(ctx context.Context) (string, error)
	ConfiguredRemotes(ctx context.Context) ([]string, error)

	// Refs and revisions
	ListRefs(ctx context.Context, prefix string) (map[string]string, error)
	GetRef(ctx context.Context, name string) (string, bool, error)
	ResolveRevision(ctx context.Context, rev string) (string, error)
	HeadSHA(ctx context.Context) (string, error)
	UpdateRef(ctx context.Context, name, sha string) error
	DeleteRef(ctx context.Context, name string) error

	// Objects
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	MergeBase(ctx context.Context, rev1, rev2 string) (string, error)
	CommitInfo(ctx context.Context, sha string) (string, []string, error)
	CreateCommit(ctx context.Context, tree string, parents []string, message string) (string, error)
	CommitLog(ctx context.Context, rangeSpec string) ([]string, error)
	Diff(ctx context.Context, left, right string, stat bool) (string, error)

	// Branches and working tree
	BranchExists(ctx context.Context, branchName string) bool
	CheckoutBranch(ctx context.Context, branchName string) error
	CreateAndCheckoutBranch(ctx context.Context, branchName string) error
	CreateBranch(ctx context.Context, branchName, commitish string) error
	DeleteBranch(ctx context.Context, branchName string) error
	HasStagedChanges(ctx context.Context) (bool, error)
	HasUnstagedChanges(ctx context.Context) (bool, error)
	HasUncommittedChanges(ctx context.Context) (bool, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error

	// Remote operations
	Fetch(ctx context.Context, remote, refspec string) error
	Push(ctx context.Context, remote string, force bool, refspecs ...string) error

	// Merging
	Merge(ctx context.Context, message string, revs ...string) (MergeResult, error)
	MergeSquash(ctx context.Context, rev string) (MergeResult, error)
	MergeContinue(ctx context.Context) error
	MergeAbort(ctx context.Context) error
	IsMergeInProgress(ctx context.Context) bool

	// Low-level commands
	RunGitCommand(ctx context.Context, args ...string) (string, error)
	RunGitCommandRaw(ctx context.Context, args ...string) (string, error)
}

var _ Runner = (*Git)(nil)
