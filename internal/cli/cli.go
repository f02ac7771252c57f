// Package cli implements the depscope command-line interface.
//
// The commands are thin drivers over the adapter in pkg/adapter: they load a
// dependency snapshot, build an adapter, and walk its starting vertices and
// edges directly. Query planning and execution belong to an external engine;
// nothing here plans anything.
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/buildinfo"
)

// Execute runs the depscope CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "depscope",
		Short:        "Depscope inspects a dependency tree enriched with security metadata",
		Long:         `Depscope runs structured lookups over a project's resolved dependency tree, enriched with repository metadata, security-advisory history, and unsafe-code usage statistics.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDepsCmd())
	root.AddCommand(newAdvisoriesCmd())
	root.AddCommand(newGeigerCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
