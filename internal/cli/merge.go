package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newMergeCmd creates the merge command
func newMergeCmd() *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Squash-merge the current WIP branch into its base and record it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()

			opts := workflow.MergeOptions{}
			if edit {
				opts.EditMessage = editMessage
			}
			if err := workflow.Merge(cmd.Context(), rc, opts); err != nil {
				return handlePaused(cmd.Context(), rc, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Edit the merge commit message")

	return cmd
}
