package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newUpdateCmd creates the update command
func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Merge fetched WIP refs into your local WIP branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()

			if err := workflow.Update(cmd.Context(), rc); err != nil {
				return handlePaused(cmd.Context(), rc, err)
			}
			return nil
		},
	}
}
