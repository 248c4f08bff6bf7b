package cli

import (
	"github.com/spf13/cobra"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/output"
)

func newLsCmd(rootDir *string) *cobra.Command {
	var (
		kind     string
		scope    string
		contains string
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the assets under the asset root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(*rootDir)
			if err != nil {
				return err
			}

			q := assets.Query{Scope: scope, NameContains: contains}
			if kind != "" {
				k, err := assets.ParseKind(kind)
				if err != nil {
					return err
				}
				q.Kind = k
			}

			items, warnings, err := env.db.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			r := output.NewRenderer(cmd.OutOrStdout(), output.ColorEnabled())
			return r.RenderAssets(items, warnings)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Restrict to one asset kind (model, texture)")
	cmd.Flags().StringVar(&scope, "scope", "", "Restrict to a subdirectory of the asset root")
	cmd.Flags().StringVar(&contains, "contains", "", "Filter by path substring")
	return cmd
}
