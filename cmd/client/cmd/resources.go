// cmd/client/cmd/resources.go
package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the resources the server exposes",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := app.Resources(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list resources: %w", err)
		}

		if jsonOutput {
			return printJSON(defs)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "NAME\tTITLE\tREQUIRED\tTEXT FIELDS\t\n")
		for _, def := range defs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				def.Name,
				def.Title,
				strings.Join(def.Required, ", "),
				strings.Join(def.TextFields, ", "),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}
