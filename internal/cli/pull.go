package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newPullCmd creates the pull command
func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch WIP refs and merge them into your local WIP branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()

			if err := workflow.Pull(cmd.Context(), rc); err != nil {
				return handlePaused(cmd.Context(), rc, err)
			}
			return nil
		},
	}
}
