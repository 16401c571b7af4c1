// cmd/client/cmd/list.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listQuery  string
	listSort   string
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "List the records of a collection",
	Long: `Print all records of one collection in server order.

The filter matches a case-insensitive substring against the resource's text
fields. Sorting is by field name, prefix with "-" for descending order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := app.ListRecords(cmd.Context(), args[0], listQuery, listSort)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		switch effectiveFormat(listFormat) {
		case "json":
			return printJSON(records)
		case "table":
			return printRecordsTable(records)
		case "csv":
			return printRecordsCSV(records)
		default:
			return printRecordsSimple(records)
		}
	},
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "substring filter over the resource's text fields")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", `field to sort by, "-field" for descending`)
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "output format (simple, table, json, csv)")

	recordsCmd.AddCommand(listCmd)
}
