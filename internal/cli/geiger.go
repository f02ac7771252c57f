package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/query"
)

// newGeigerCmd creates the "geiger" command: unsafe-code usage per package.
func newGeigerCmd() *cobra.Command {
	var flags snapshotFlags

	cmd := &cobra.Command{
		Use:   "geiger",
		Short: "Show unsafe-code usage statistics for the dependency tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			a, err := flags.build(ctx)
			if err != nil {
				return err
			}

			vertices, err := a.StartingVertices(ctx, "Dependencies", query.Params{"includeRoot": true})
			if err != nil {
				return err
			}

			logger.Debug("scanning for unsafe usage")
			pairs, err := a.Neighbors(ctx, vertices, "Package", "geiger", nil)
			if err != nil {
				return err
			}

			count := 0
			for v, usage := range pairs {
				pkg, _ := v.AsPackage()
				for uv := range usage {
					u, _ := uv.AsUnsafety()
					count++

					total := u.Used.Total()
					line := styleHighlight.Render(pkg.Name) + " " + pkg.Version
					if u.ForbidsUnsafe {
						line += " " + styleSafe.Render("forbids unsafe")
					} else if total.Unsafe > 0 {
						line += " " + styleDanger.Render(fmt.Sprintf("%d/%d unsafe (%.1f%%)",
							total.Unsafe, total.Total(), 100*total.PercentageUnsafe()))
					} else {
						line += " " + styleSafe.Render("no unsafe usage")
					}
					fmt.Println(line)
				}
			}
			prog.done(fmt.Sprintf("Scanned %d packages", count))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
