package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newDiffCmd creates the diff command
func newDiffCmd() *cobra.Command {
	var stat bool

	cmd := &cobra.Command{
		Use:   "diff [branch]",
		Short: "Show the diff a WIP branch carries beyond its base",
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
			out, err := workflow.Diff(cmd.Context(), rc, branch, stat)
			if err != nil {
				return err
			}
			rc.Splog.Page(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&stat, "stat", false, "Show a diffstat instead of the full diff")

	return cmd
}
