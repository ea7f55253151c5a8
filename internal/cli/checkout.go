package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/workflow"
)

// newCheckoutCmd creates the checkout command
func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "checkout <base>",
		Aliases: []string{"co"},
		Short:   "Check out your WIP branch for a base, creating it if needed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()
			return workflow.Checkout(cmd.Context(), rc, args[0])
		},
	}
}
