package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newGCCmd creates the gc command
func newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Delete local WIP branches whose tips were already merged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()
			return workflow.GC(cmd.Context(), rc)
		},
	}
}
