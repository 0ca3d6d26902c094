package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macroview/creditgap/internal/dataset"
	"github.com/macroview/creditgap/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print descriptive statistics for a group",
	Long:  "Fetches a data group and prints count, mean, std, min, quartiles, and max of the credit-to-GDP gap values, optionally filtered to one country.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		client, groups, err := initBIS()
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("group")
		country, _ := cmd.Flags().GetString("country")
		if name == "" {
			name = cfg.Dashboard.DefaultGroup
		}

		g, err := groups.Get(name)
		if err != nil {
			return err
		}

		tbl, err := client.FetchGroup(ctx, g)
		if err != nil {
			return err
		}

		d, err := dataset.Normalize(tbl, g.Name)
		if err != nil {
			return err
		}
		if country != "" {
			d = d.Filter(country)
		}

		formatSummary(os.Stdout, stats.Describe(d.Values()))
		return nil
	},
}

func formatSummary(w io.Writer, s stats.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATISTIC\tVALUE")
	for _, row := range s.Rows() {
		fmt.Fprintf(tw, "%s\t%s\n", row.Statistic, row.Value)
	}
	tw.Flush()
}

func init() {
	statsCmd.Flags().String("group", "", "data group (default from config)")
	statsCmd.Flags().String("country", "", "filter to a single country code")
	rootCmd.AddCommand(statsCmd)
}
