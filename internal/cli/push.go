package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Reconcile WIP refs out to every remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()
			return workflow.Push(cmd.Context(), rc)
		},
	}
}
