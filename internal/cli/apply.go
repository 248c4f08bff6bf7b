package cli

import (
	"github.com/spf13/cobra"

	"github.com/assetpipe/assetrules/pkg/output"
)

func newApplyCmd(rootDir *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply every enabled rule to the matching assets",
		Long: `Apply scans the asset root, matches each asset against the enabled
rules, and commits the resulting setting changes. Later rules win when
several enabled rules target the same setting. Assets that already
carry the proposed values are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(*rootDir)
			if err != nil {
				return err
			}
			set, err := env.loadRules()
			if err != nil {
				return err
			}

			result, warnings, err := applyRules(cmd.Context(), env, set, dryRun)
			if err != nil {
				return err
			}

			r := output.NewRenderer(cmd.OutOrStdout(), output.ColorEnabled())
			for _, w := range warnings {
				cmd.Printf("warning: %s: %v\n", w.Path, w.Err)
			}
			return r.RenderBatchResult(result, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing anything")
	return cmd
}
