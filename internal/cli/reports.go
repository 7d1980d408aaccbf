package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maxviazov/reporting-dashboard/internal/report"
)

func newReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List the report catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "DOMAIN\tSLUG\tVIEW\tPAGINATED\tFILTERS")
			for _, d := range report.Default().All() {
				params := make([]string, 0, len(d.Filters))
				for _, f := range d.Filters {
					params = append(params, f.Param)
				}
				filters := strings.Join(params, ",")
				if filters == "" {
					filters = "-"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", d.Domain, d.Slug, d.View, d.Paginated, filters)
			}
			return w.Flush()
		},
	}
}
