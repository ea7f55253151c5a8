package cli

import (
	"github.com/spf13/cobra"

	"gitwip.dev/gitwip/internal/runtime"
)

// NewRootCmd creates the root cobra command. With no verb it renders the
// repository's WIP status.
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-wip",
		Short: "git-wip checkpoints uncommitted work and keeps it in sync across remotes",
		Long: `git-wip checkpoints uncommitted work as per-machine WIP branches, syncs them
across every configured remote, and folds finished work back into its base
branch while keeping a durable record of what was merged.`,
		Version:       versionString(version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getContext(cmd)
			if err != nil {
				return err
			}
			defer rc.Splog.Close()
			return runStatus(cmd, rc)
		},
	}

	registerPersistentFlags(rootCmd)

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newCheckoutCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newPullCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newMarkMergedCmd())
	rootCmd.AddCommand(newGCCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newRebaseEditCmd())

	return rootCmd
}

func versionString(version, commit, date string) string {
	return version + " (commit " + commit + ", built " + date + ")"
}

// registerPersistentFlags wires the flags shared by every verb
func registerPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")
	cmd.PersistentFlags().BoolP("dry-run", "n", false, "Log mutating git commands instead of running them")
	cmd.PersistentFlags().BoolP("offline", "o", false, "Skip all remote operations")
	cmd.PersistentFlags().StringP("remote", "r", "", "Restrict remote operations to a single remote")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the config file")
	cmd.PersistentFlags().StringP("base", "b", "", "Operate on a single base branch")
}

// getContext builds the runtime context from the persistent flags
func getContext(cmd *cobra.Command) (*runtime.Context, error) {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	dryRun, _ := flags.GetBool("dry-run")
	offline, _ := flags.GetBool("offline")
	remote, _ := flags.GetString("remote")
	configPath, _ := flags.GetString("config")
	base, _ := flags.GetString("base")

	return runtime.GetContext(cmd.Context(), runtime.Options{
		Verbose:    verbose,
		DryRun:     dryRun,
		Offline:    offline,
		Remote:     remote,
		ConfigPath: configPath,
		Base:       base,
	})
}
