// Package errors provides sentinel errors and custom error types for the gitwip application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrDirtyWorkingTree indicates an operation requiring a clean tree found uncommitted changes
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrNotAWipBranch indicates the operation requires a WIP branch
	ErrNotAWipBranch = errors.New("not a wip branch")

	// ErrIsAWipBranch indicates the operation must not run on a WIP branch
	ErrIsAWipBranch = errors.New("already on a wip branch")

	// ErrDivergedMergeBranch indicates local and remote merge-tracking histories are unrelated
	ErrDivergedMergeBranch = errors.New("merge branch diverged")

	// ErrCommitSetMismatch indicates the rebase filter keep/drop sets do not cover the plan
	ErrCommitSetMismatch = errors.New("commit set mismatch")

	// ErrNoRemotesConfigured indicates no candidate remote is available
	ErrNoRemotesConfigured = errors.New("no remotes configured")

	// ErrNothingToSave indicates save found no changes to checkpoint
	ErrNothingToSave = errors.New("nothing to save")

	// ErrNothingToPush indicates reconciliation produced an empty plan.
	// Callers treat this as success and only log it.
	ErrNothingToPush = errors.New("nothing to push")

	// ErrMergeConflict indicates a merge stopped on conflicts and awaits resolution
	ErrMergeConflict = errors.New("merge conflict")
)

// MalformedWipBranchError reports a branch name that does not follow the wip naming scheme
type MalformedWipBranchError struct {
	BranchName string
}

func (e *MalformedWipBranchError) Error() string {
	return fmt.Sprintf("branch %s is not a wip branch", e.BranchName)
}

// Is returns true if the target error is ErrNotAWipBranch
func (e *MalformedWipBranchError) Is(target error) bool {
	return target == ErrNotAWipBranch
}

// NewMalformedWipBranchError creates a new MalformedWipBranchError
func NewMalformedWipBranchError(branchName string) *MalformedWipBranchError {
	return &MalformedWipBranchError{BranchName: branchName}
}

// DivergedMergeBranchError reports unrelated local and remote merge-tracking histories
// under the strict divergence policy.
type DivergedMergeBranchError struct {
	Base      string
	LocalSHA  string
	RemoteSHA string
}

func (e *DivergedMergeBranchError) Error() string {
	return fmt.Sprintf("merge branch for %s diverged (local %s, remote %s); resolve manually or enable the autojoin policy",
		e.Base, short(e.LocalSHA), short(e.RemoteSHA))
}

// Is returns true if the target error is ErrDivergedMergeBranch
func (e *DivergedMergeBranchError) Is(target error) bool {
	return target == ErrDivergedMergeBranch
}

// NewDivergedMergeBranchError creates a new DivergedMergeBranchError
func NewDivergedMergeBranchError(base, localSHA, remoteSHA string) *DivergedMergeBranchError {
	return &DivergedMergeBranchError{Base: base, LocalSHA: localSHA, RemoteSHA: remoteSHA}
}

// CommitSetMismatchError reports rebase filter keep/drop sets whose union does not
// exactly equal the proposed plan.
type CommitSetMismatchError struct {
	Unclaimed []string
	Missing   []string
}

func (e *CommitSetMismatchError) Error() string {
	var parts []string
	if len(e.Unclaimed) > 0 {
		parts = append(parts, fmt.Sprintf("commits in plan but in neither set: %s", strings.Join(e.Unclaimed, ", ")))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("commits in keep/drop sets but not in plan: %s", strings.Join(e.Missing, ", ")))
	}
	return "rebase filter commit set mismatch: " + strings.Join(parts, "; ")
}

// Is returns true if the target error is ErrCommitSetMismatch
func (e *CommitSetMismatchError) Is(target error) bool {
	return target == ErrCommitSetMismatch
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

func short(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
