package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/klothoplatform/servgraph/pkg/runtimes"
	"github.com/spf13/cobra"
)

func runtimesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "runtimes",
		Short: "List the supported runtimes",
		Args:  cobra.NoArgs,
		RunE:  runRuntimes,
	}
}

func runRuntimes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUNTIME\tLANGUAGE\tVERSION\t")
	for _, id := range runtimes.IDs() {
		rt, err := runtimes.Lookup(id)
		if err != nil {
			return err
		}
		latest, err := runtimes.Latest(rt.Language)
		if err != nil {
			return err
		}
		marker := ""
		if latest.ID == rt.ID {
			marker = color.GreenString("latest")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rt.ID, rt.Language, rt.Version, marker)
	}
	return w.Flush()
}
