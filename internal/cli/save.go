package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newSaveCmd creates the save command
func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Checkpoint staged and uncommitted changes onto your WIP branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()
			return workflow.Save(cmd.Context(), rc)
		},
	}
}
