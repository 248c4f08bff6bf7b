package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/output"
	"github.com/assetpipe/assetrules/pkg/rules"
)

func newRulesCmd(rootDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the rule set",
		Long: `Rules pair filters with setting overrides. The subcommands edit the
persisted rule set; positions shown by 'rules list' identify rules for
rm, mv, enable and disable.`,
	}

	cmd.AddCommand(newRulesListCmd(rootDir))
	cmd.AddCommand(newRulesAddCmd(rootDir))
	cmd.AddCommand(newRulesRmCmd(rootDir))
	cmd.AddCommand(newRulesMvCmd(rootDir))
	cmd.AddCommand(newRulesEnableCmd(rootDir, true))
	cmd.AddCommand(newRulesEnableCmd(rootDir, false))
	return cmd
}

func newRulesListCmd(rootDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every rule with its position and state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(*rootDir)
			if err != nil {
				return err
			}
			set, err := env.loadRules()
			if err != nil {
				return err
			}
			r := output.NewRenderer(cmd.OutOrStdout(), output.ColorEnabled())
			return r.RenderRules(&set)
		},
	}
}

func newRulesAddCmd(rootDir *string) *cobra.Command {
	var (
		kind     string
		fileKind string
		texKind  string
		mesh     string
		alpha    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Append a new enabled rule with wildcard filters",
		Long: `Add appends a rule whose overrides all start at "don't change"; edit
the rules file to set overrides, or narrow the filters with flags. See
'help rules-file' for the file format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(*rootDir)
			if err != nil {
				return err
			}
			set, err := env.loadRules()
			if err != nil {
				return err
			}

			switch kind {
			case "model":
				rule := rules.NewModelRule(args[0])
				if fileKind != "" {
					fk, err := assets.ParseFileKind(fileKind)
					if err != nil {
						return err
					}
					rule.Filters.FileKind = fk
				}
				if mesh != "" {
					mk, err := rules.ParseMeshKind(mesh)
					if err != nil {
						return err
					}
					rule.Filters.MeshKind = mk
				}
				if err := rule.Validate(); err != nil {
					return err
				}
				set.AddModel(rule)
			case "texture":
				rule := rules.NewTextureRule(args[0])
				if texKind != "" {
					tk, err := assets.ParseTextureKind(texKind)
					if err != nil {
						return err
					}
					rule.Filters.TextureKind = tk
				}
				if alpha != "" {
					af, err := rules.ParseAlphaFilter(alpha)
					if err != nil {
						return err
					}
					rule.Filters.Alpha = af
				}
				if err := rule.Validate(); err != nil {
					return err
				}
				set.AddTexture(rule)
			default:
				return errors.Newf(errors.ErrInvalidInput, "unknown rule kind %q", kind)
			}

			if err := env.saveRules(set); err != nil {
				return err
			}
			cmd.Printf("added %s rule %q\n", kind, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "model", "Rule kind (model, texture)")
	cmd.Flags().StringVar(&fileKind, "file-kind", "", "Model filter: source format (fbx, obj, blend, collada, max, other)")
	cmd.Flags().StringVar(&mesh, "mesh", "", "Model filter: mesh kind (all, skinnedOnly, staticOnly)")
	cmd.Flags().StringVar(&texKind, "texture-kind", "", "Texture filter: texture kind (default, normalmap, sprite, lightmap, other)")
	cmd.Flags().StringVar(&alpha, "alpha", "", "Texture filter: alpha channel (all, onlyWithAlpha, onlyOpaque)")
	return cmd
}

// parsePos converts a positional argument into a rule index.
func parsePos(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Newf(errors.ErrInvalidInput, "invalid rule position %q", s)
	}
	return n, nil
}

func newRulesRmCmd(rootDir *string) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "rm <pos>",
		Short: "Remove the rule at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePos(args[0])
			if err != nil {
				return err
			}
			return editRules(cmd, *rootDir, func(set *rules.RuleSet) error {
				if kind == "texture" {
					return set.RemoveTexture(pos)
				}
				return set.RemoveModel(pos)
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "model", "Rule kind (model, texture)")
	return cmd
}

func newRulesMvCmd(rootDir *string) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move a rule to a new position",
		Long: `Move changes rule precedence: rules apply in listed order and later
rules win conflicting overrides.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePos(args[0])
			if err != nil {
				return err
			}
			to, err := parsePos(args[1])
			if err != nil {
				return err
			}
			return editRules(cmd, *rootDir, func(set *rules.RuleSet) error {
				if kind == "texture" {
					return set.MoveTexture(from, to)
				}
				return set.MoveModel(from, to)
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "model", "Rule kind (model, texture)")
	return cmd
}

func newRulesEnableCmd(rootDir *string, enable bool) *cobra.Command {
	var kind string

	use, short := "enable <pos>", "Enable the rule at a position"
	if !enable {
		use, short = "disable <pos>", "Disable the rule at a position"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePos(args[0])
			if err != nil {
				return err
			}
			return editRules(cmd, *rootDir, func(set *rules.RuleSet) error {
				if kind == "texture" {
					return set.SetTextureEnabled(pos, enable)
				}
				return set.SetModelEnabled(pos, enable)
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "model", "Rule kind (model, texture)")
	return cmd
}

// editRules loads the rule set, applies edit, and persists the result.
func editRules(cmd *cobra.Command, rootDir string, edit func(*rules.RuleSet) error) error {
	env, err := newAppEnv(rootDir)
	if err != nil {
		return err
	}
	set, err := env.loadRules()
	if err != nil {
		return err
	}
	if err := edit(&set); err != nil {
		return err
	}
	return env.saveRules(set)
}
