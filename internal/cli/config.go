package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetpipe/assetrules/pkg/config"
	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/paths"
)

func newConfigCmd(rootDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the project configuration",
	}
	cmd.AddCommand(newConfigInitCmd(rootDir))
	return cmd
}

func newConfigInitCmd(rootDir *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented project configuration file",
		Long: `Init writes the default configuration with every value commented out,
so the file documents the available settings without overriding any.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(*rootDir)
			if err != nil {
				return err
			}
			target := p.ProjectConfig()
			if _, err := os.Stat(target); err == nil && !force {
				return errors.Newf(errors.ErrInvalidInput, "%s already exists, use --force to overwrite", target)
			}

			if err := os.WriteFile(target, []byte(config.GenerateProjectConfig()), 0o644); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, "failed to write %s", target)
			}
			cmd.Printf("wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}
