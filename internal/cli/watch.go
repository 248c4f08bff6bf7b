package cli

import (
	"github.com/spf13/cobra"

	"github.com/assetpipe/assetrules/pkg/logging"
	"github.com/assetpipe/assetrules/pkg/output"
	"github.com/assetpipe/assetrules/pkg/watch"
)

func newWatchCmd(rootDir *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-apply the rules whenever assets change",
		Long: `Watch monitors the asset root and re-runs apply after each settled
burst of file changes. Rule application is idempotent, so the sidecar
writes of one pass do not cause further changes on the next.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(*rootDir)
			if err != nil {
				return err
			}
			logger := logging.GetLogger("cli.watch")

			w, err := watch.New(env.paths.AssetRoot(), env.cfg.Watch.Debounce())
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			r := output.NewRenderer(cmd.OutOrStdout(), output.ColorEnabled())
			cmd.Printf("watching %s, press Ctrl-C to stop\n", env.paths.AssetRoot())

			return w.Run(cmd.Context(), func(paths []string) {
				// Rules may have changed on disk too, reload each pass.
				set, err := env.loadRules()
				if err != nil {
					logger.Error().Err(err).Msg("failed to reload rules")
					return
				}
				result, _, err := applyRules(cmd.Context(), env, set, dryRun)
				if err != nil {
					logger.Error().Err(err).Msg("apply failed")
					return
				}
				_ = r.RenderBatchResult(result, dryRun)
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing anything")
	return cmd
}
