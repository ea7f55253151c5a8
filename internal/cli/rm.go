package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newRmCmd creates the rm command
func newRmCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "rm [branch]",
		Short: "Delete a WIP branch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()

			branch := ""
			if len(args) > 0 {
				branch = args[0]
			}
			return workflow.Rm(cmd.Context(), rc, workflow.RmOptions{
				Branch:  branch,
				Remote:  remote,
				Confirm: confirm,
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Also delete the branch on the candidate remotes")

	return cmd
}
