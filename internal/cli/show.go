package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newShowCmd creates the show command
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [branch]",
		Short: "Show the commits a WIP branch carries beyond its base",
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
			out, err := workflow.Show(cmd.Context(), rc, branch)
			if err != nil {
				return err
			}
			rc.Splog.Page(out)
			return nil
		},
	}
}
