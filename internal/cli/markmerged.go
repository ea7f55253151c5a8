package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newMarkMergedCmd creates the mark-merged command
func newMarkMergedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-merged [branch]",
		Short: "Record a WIP branch as merged without folding it into the base",
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
			return workflow.MarkMerged(cmd.Context(), rc, branch)
		},
	}
}
