package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/query"
)

// newDepsCmd creates the "deps" command: list every resolved package.
func newDepsCmd() *cobra.Command {
	var flags snapshotFlags
	var includeRoot bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List the resolved packages of the dependency tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			a, err := flags.build(ctx)
			if err != nil {
				return err
			}

			vertices, err := a.StartingVertices(ctx, "Dependencies", query.Params{"includeRoot": includeRoot})
			if err != nil {
				return err
			}

			count := 0
			for v := range vertices {
				pkg, _ := v.AsPackage()
				line := styleHighlight.Render(pkg.Name) + " " + pkg.Version
				if pkg.License != "" {
					line += " " + styleDim.Render(pkg.License)
				}
				fmt.Println(line)
				count++
			}
			prog.done(fmt.Sprintf("Listed %d packages", count))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&includeRoot, "include-root", false, "include the root package in the listing")
	return cmd
}
