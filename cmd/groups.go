package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macroview/creditgap/pkg/bis"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the available data groups",
	RunE: func(cmd *cobra.Command, _ []string) error {
		groups, err := bis.LoadGroups()
		if err != nil {
			return err
		}

		showURLs, _ := cmd.Flags().GetBool("urls")
		formatGroups(os.Stdout, groups, showURLs)
		return nil
	},
}

func formatGroups(w io.Writer, groups *bis.Registry, showURLs bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if showURLs {
		fmt.Fprintln(tw, "NAME\tCOUNTRIES\tURL")
	} else {
		fmt.Fprintln(tw, "NAME\tCOUNTRIES\tMEMBERS")
	}
	for _, g := range groups.All() {
		if showURLs {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", g.Name, len(g.Countries), g.QueryURL(cfg.BIS.BaseURL))
		} else {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", g.Name, len(g.Countries), strings.Join(g.Countries, " "))
		}
	}
	tw.Flush()
}

func init() {
	groupsCmd.Flags().Bool("urls", false, "show the BIS query URL for each group")
	rootCmd.AddCommand(groupsCmd)
}
