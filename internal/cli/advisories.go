package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/query"
)

// newAdvisoriesCmd creates the "advisories" command: the advisory history of
// every resolved package, with the same filters the advisoryHistory edge
// takes.
func newAdvisoriesCmd() *cobra.Command {
	var flags snapshotFlags
	var (
		includeWithdrawn bool
		arch             string
		osName           string
		minSeverity      string
	)

	cmd := &cobra.Command{
		Use:   "advisories",
		Short: "Show security-advisory history for the dependency tree",
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

			params := query.Params{"includeWithdrawn": includeWithdrawn}
			if arch != "" {
				params["arch"] = arch
			}
			if osName != "" {
				params["os"] = osName
			}
			if minSeverity != "" {
				params["minSeverity"] = minSeverity
			}

			logger.Debug("querying advisory history", "includeWithdrawn", includeWithdrawn, "minSeverity", minSeverity)
			pairs, err := a.Neighbors(ctx, vertices, "Package", "advisoryHistory", params)
			if err != nil {
				return err
			}

			total := 0
			for v, advisories := range pairs {
				pkg, _ := v.AsPackage()
				for av := range advisories {
					adv, _ := av.AsAdvisory()
					total++

					status := styleSafe.Render("patched")
					if adv.AffectsVersion(pkg.Version) {
						status = styleDanger.Render("affected")
					}
					header := styleTitle.Render(adv.ID) + " " + pkg.Name + " " + pkg.Version + " " + status
					if adv.Severity.String() != "none" {
						header += " " + styleWarning.Render(adv.Severity.String())
					}
					fmt.Println(header)
					printDetail("%s", adv.Title)
					if adv.IsWithdrawn() {
						printDetail("withdrawn %s", adv.Withdrawn.Format("2006-01-02"))
					}
				}
			}

			if total == 0 {
				printSuccess("No advisories found")
			}
			prog.done(fmt.Sprintf("Found %d advisories", total))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&includeWithdrawn, "include-withdrawn", false, "include withdrawn advisories")
	cmd.Flags().StringVar(&arch, "arch", "", "only advisories affecting this architecture")
	cmd.Flags().StringVar(&osName, "os", "", "only advisories affecting this operating system")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "", "inclusive severity floor (low, medium, high, critical)")
	return cmd
}
