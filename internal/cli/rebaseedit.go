package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/rebase"
)

// newRebaseEditCmd creates the hidden rebase-edit command. Git invokes it as
// the sequence editor during a filtering rebase; it rewrites the todo file
// according to the commit sets passed through the environment.
func newRebaseEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "rebase-edit <todo-file>",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			todoPath := args[0]

			content, err := os.ReadFile(todoPath)
			if err != nil {
				return fmt.Errorf("failed to read rebase todo: %w", err)
			}

			keep := rebase.ParseCommitSet(os.Getenv(rebase.KeepCommitsEnv))
			drop := rebase.ParseCommitSet(os.Getenv(rebase.DropCommitsEnv))

			rewritten, err := rebase.RewriteTodo(string(content), keep, drop)
			if err != nil {
				return err
			}

			if err := os.WriteFile(todoPath, []byte(rewritten), 0o644); err != nil {
				return fmt.Errorf("failed to write rebase todo: %w", err)
			}
			return nil
		},
	}
}
