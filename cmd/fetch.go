package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macroview/creditgap/internal/dataset"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and print normalized observations for a group",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		client, groups, err := initBIS()
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("group")
		country, _ := cmd.Flags().GetString("country")
		limit, _ := cmd.Flags().GetInt("limit")
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

		if d.Len() == 0 {
			fmt.Fprintln(os.Stderr, "No observations found.")
			return nil
		}

		formatObservations(os.Stdout, d.Observations, limit)
		return nil
	},
}

func formatObservations(w io.Writer, obs []dataset.Observation, limit int) {
	if limit > 0 && limit < len(obs) {
		obs = obs[:limit]
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tCOUNTRY\tVALUE\tCHANGE")
	for _, o := range obs {
		change := ""
		if o.Change != nil {
			change = strconv.FormatFloat(*o.Change, 'f', 2, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			o.Period.Format("2006-01-02"),
			o.Country,
			strconv.FormatFloat(o.Value, 'f', 2, 64),
			change,
		)
	}
	tw.Flush()
}

func init() {
	fetchCmd.Flags().String("group", "", "data group (default from config)")
	fetchCmd.Flags().String("country", "", "filter to a single country code")
	fetchCmd.Flags().Int("limit", 0, "maximum rows to print (0 = all)")
	rootCmd.AddCommand(fetchCmd)
}
