package cmd

import (
	"fmt"
	"net/http"
	"text/tabwriter"

	"tinyhttpd/feature/static"

	"github.com/spf13/cobra"
)

// routesCmd represents the routes command
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the routing table",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tFILE\tSTATUS")
		for _, r := range static.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%d\n", r.Path, r.Filename, r.Status)
		}
		fmt.Fprintf(w, "*\t%s\t%d\n", static.NotFoundPage, http.StatusNotFound)
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(routesCmd)
}
