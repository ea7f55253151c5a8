package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo wraps a real git repository on disk for tests
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a fresh repository with a main branch and a test
// identity, isolated from the user's global git config.
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	repo := &GitRepo{Dir: dir}
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewBareGitRepo initializes a bare repository suitable as a test remote
func NewBareGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "init", "--bare", dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init bare repo: %w", err)
	}
	return &GitRepo{Dir: dir}, nil
}

// RunGitCommand executes a git command in the repository directory
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if os.Getenv("DEBUG") != "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange writes a file change, staged unless unstaged is set
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)
	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if !unstaged {
		return r.RunGitCommand("add", filePath)
	}
	return nil
}

// CreateChangeAndCommit writes a file change and commits it
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", textValue)
}

// AddRemote registers a remote pointing at another local repository
func (r *GitRepo) AddRemote(name, path string) error {
	return r.RunGitCommand("remote", "add", name, path)
}

// CreateBranch creates a branch without checking it out
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("branch", name)
}

// CreateAndCheckoutBranch creates and checks out a branch
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out a branch
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", name)
}

// DeleteBranch force-deletes a branch
func (r *GitRepo) DeleteBranch(name string) error {
	return r.RunGitCommand("branch", "-D", name)
}

// CurrentBranch returns the checked-out branch name
func (r *GitRepo) CurrentBranch() (string, error) {
	return r.RunGitCommandAndGetOutput("symbolic-ref", "--short", "HEAD")
}

// RevParse resolves a revision to a SHA
func (r *GitRepo) RevParse(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", "--verify", rev)
}

// ResolveMergeConflicts resolves merge conflicts by taking their side
func (r *GitRepo) ResolveMergeConflicts() error {
	return r.RunGitCommand("checkout", "--theirs", ".")
}

// MarkMergeConflictsAsResolved stages everything after conflict resolution
func (r *GitRepo) MarkMergeConflictsAsResolved() error {
	return r.RunGitCommand("add", ".")
}
