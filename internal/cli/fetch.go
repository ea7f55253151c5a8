package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newFetchCmd creates the fetch command
func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch WIP refs from every remote and refresh the merge branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()
			return workflow.Fetch(cmd.Context(), rc)
		},
	}
}
