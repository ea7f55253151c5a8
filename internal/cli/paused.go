package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"

	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/workflow"
)

// handlePaused intercepts a paused workflow. On a terminal it drops the user
// into a shell inside the worktree to resolve conflicts, then resumes the
// workflow. Off a terminal the pause is reported as a plain error.
func handlePaused(ctx context.Context, rc *runtime.Context, err error) error {
	var paused *workflow.PausedError
	if !errors.As(err, &paused) {
		return err
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("paused: %s (resolve conflicts and run 'git merge --continue', then rerun)", paused.Reason)
	}

	rc.Splog.Warn("Paused: %s", paused.Reason)
	rc.Splog.Info("Dropping you into a shell. Resolve the conflicts, stage the result, and exit the shell to continue.")
	if err := spawnShell(ctx, rc.Git.Root()); err != nil {
		return fmt.Errorf("failed to open shell: %w", err)
	}

	// A resumed workflow may hit another conflict on a later step
	return handlePaused(ctx, rc, paused.Resume(ctx))
}

func spawnShell(ctx context.Context, dir string) error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.CommandContext(ctx, shell)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
