package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/rules"
	"github.com/assetpipe/assetrules/pkg/rulestore"
)

func newExportCmd(rootDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the rule set as YAML to a file or stdout",
		Long: `Export serialises the full rule set, disabled rules included, so it
can be versioned or imported into another project.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(*rootDir)
			if err != nil {
				return err
			}
			set, err := env.loadRules()
			if err != nil {
				return err
			}

			data, err := rulestore.Encode(set)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				cmd.Print(string(data))
				return nil
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return errors.Wrapf(err, errors.ErrRuleSetWrite, "failed to write %s", args[0])
			}
			cmd.Printf("exported %d rules to %s\n", set.Len(), args[0])
			return nil
		},
	}
}

func newImportCmd(rootDir *string) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import rules from a YAML file",
		Long: `Import reads a rule set exported earlier. Mode 'replace' discards the
current rules first; 'append' keeps them and adds the imported rules
after, giving the imported rules precedence. A malformed or invalid
file leaves the current rule set untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := rules.ParseMergeMode(mode)
			if err != nil {
				return err
			}
			env, err := newAppEnv(*rootDir)
			if err != nil {
				return err
			}
			set, err := env.loadRules()
			if err != nil {
				return err
			}

			if err := rulestore.Import(&set, args[0], m); err != nil {
				return err
			}
			if err := env.saveRules(set); err != nil {
				return err
			}
			cmd.Printf("imported %s, rule set now has %d rules\n", args[0], set.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "replace", "Merge mode (replace, append)")
	return cmd
}
