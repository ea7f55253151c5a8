package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/runtime"
	"gitwip.dev/gitwip/internal/workflow"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the WIP branches for every base, local and remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()
			return runStatus(cmd, rc)
		},
	}
}

func runStatus(cmd *cobra.Command, rc *runtime.Context) error {
	out, err := workflow.Status(cmd.Context(), rc)
	if err != nil {
		return err
	}
	rc.Splog.Page(out)
	return nil
}
