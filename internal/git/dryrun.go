package git

import (
	"context"
	"strings"
)

// DryRunSHA is returned by mutating dry-run calls that would produce a commit
const DryRunSHA = "0000000000000000000000000000000000000000"

// LogFunc receives the description of a skipped mutation in dry-run mode
type LogFunc func(format string, args ...interface{})

// DryRun wraps a Runner so that every mutating operation is logged instead of
// executed, while reads pass through. Constructed once per invocation and
// threaded explicitly; there is no global dry-run state.
type DryRun struct {
	Runner
	logf LogFunc
}

// NewDryRun creates a dry-run wrapper around a Runner
func NewDryRun(inner Runner, logf LogFunc) *DryRun {
	return &DryRun{Runner: inner, logf: logf}
}

func (d *DryRun) skip(args ...string) {
	d.logf("[dry-run] git %s", strings.Join(args, " "))
}

func (d *DryRun) UpdateRef(_ context.Context, name, sha string) error {
	d.skip("update-ref", name, sha)
	return nil
}

func (d *DryRun) DeleteRef(_ context.Context, name string) error {
	d.skip("update-ref", "-d", name)
	return nil
}

func (d *DryRun) CreateCommit(_ context.Context, tree string, parents []string, message string) (string, error) {
	args := []string{"commit-tree", tree}
	for _, parent := range parents {
		args = append(args, "-p", parent)
	}
	d.skip(args...)
	return DryRunSHA, nil
}

func (d *DryRun) CheckoutBranch(_ context.Context, branchName string) error {
	d.skip("checkout", branchName)
	return nil
}

func (d *DryRun) CreateAndCheckoutBranch(_ context.Context, branchName string) error {
	d.skip("checkout", "-b", branchName)
	return nil
}

func (d *DryRun) CreateBranch(_ context.Context, branchName, commitish string) error {
	d.skip("branch", branchName, commitish)
	return nil
}

func (d *DryRun) DeleteBranch(_ context.Context, branchName string) error {
	d.skip("branch", "-D", branchName)
	return nil
}

func (d *DryRun) StageAll(_ context.Context) error {
	d.skip("add", "-A")
	return nil
}

func (d *DryRun) Commit(_ context.Context, message string) error {
	d.skip("commit", "-m", message)
	return nil
}

func (d *DryRun) Fetch(_ context.Context, remote, refspec string) error {
	d.skip("fetch", remote, refspec)
	return nil
}

func (d *DryRun) Push(_ context.Context, remote string, force bool, refspecs ...string) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote)
	args = append(args, refspecs...)
	d.skip(args...)
	return nil
}

func (d *DryRun) Merge(_ context.Context, message string, revs ...string) (MergeResult, error) {
	d.skip(append([]string{"merge", "-m", message}, revs...)...)
	return MergeDone, nil
}

func (d *DryRun) MergeSquash(_ context.Context, rev string) (MergeResult, error) {
	d.skip("merge", "--squash", rev)
	return MergeDone, nil
}

func (d *DryRun) MergeContinue(_ context.Context) error {
	d.skip("merge", "--continue")
	return nil
}

func (d *DryRun) MergeAbort(_ context.Context) error {
	d.skip("merge", "--abort")
	return nil
}
