// cmd/client/cmd/delete.go
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRecordID(args[1])
		if err != nil {
			return err
		}

		if err := app.DeleteRecord(cmd.Context(), args[0], id); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]string{"status": "ok"})
		}

		fmt.Printf("%s Deleted %s record %d\n", color.GreenString("✓"), args[0], id)
		return nil
	},
}

func init() {
	recordsCmd.AddCommand(deleteCmd)
}
