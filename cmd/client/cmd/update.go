// cmd/client/cmd/update.go
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	updateFields []string
	updateData   string
)

var updateCmd = &cobra.Command{
	Use:   "update <resource> <id>",
	Short: "Update fields of a record",
	Long: `Merge the given fields into an existing record. Fields not mentioned
keep their current values.

  stockroom records update items 1 --field stock=3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRecordID(args[1])
		if err != nil {
			return err
		}

		fields, err := parseFields(updateData, updateFields)
		if err != nil {
			return err
		}

		rec, err := app.UpdateRecord(cmd.Context(), args[0], id, fields)
		if err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}

		if jsonOutput {
			return printJSON(rec)
		}

		fmt.Printf("%s Updated %s record %d\n\n", color.GreenString("✓"), args[0], rec.ID)
		return printRecordHuman(rec)
	},
}

func init() {
	updateCmd.Flags().StringArrayVar(&updateFields, "field", nil, "field as key=value, repeatable")
	updateCmd.Flags().StringVar(&updateData, "data", "", "fields to merge as a JSON object")

	recordsCmd.AddCommand(updateCmd)
}
