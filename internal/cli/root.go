// Package cli wires the assetrules commands together.
package cli

import (
	"embed"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/assetpipe/assetrules/internal/version"
	"github.com/assetpipe/assetrules/pkg/cobrax/topics"
	"github.com/assetpipe/assetrules/pkg/logging"
)

//go:embed docs
var docsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		rootDir   string
	)

	rootCmd := &cobra.Command{
		Use:   "assetrules",
		Short: "Rule-based import settings for game assets",
		Long: `assetrules applies named configuration rules to the model and texture
assets of a project. Rules pair filters with setting overrides; applying
them batch-updates the import settings of every matching asset.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Asset root directory (default: $ASSETRULES_ROOT or cwd)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newApplyCmd(&rootDir))
	rootCmd.AddCommand(newLsCmd(&rootDir))
	rootCmd.AddCommand(newRulesCmd(&rootDir))
	rootCmd.AddCommand(newExportCmd(&rootDir))
	rootCmd.AddCommand(newImportCmd(&rootDir))
	rootCmd.AddCommand(newWatchCmd(&rootDir))
	rootCmd.AddCommand(newConfigCmd(&rootDir))

	if tm, err := topics.Load(docsFS, "docs"); err == nil {
		tm.Install(rootCmd)
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("assetrules version %s\n", version.Version)
			cmd.Printf("Commit: %s\n", version.Commit)
			cmd.Printf("Built:  %s\n", version.Date)
		},
	}
}

// Execute runs the root command, printing errors to stderr.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
