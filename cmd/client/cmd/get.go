// cmd/client/cmd/get.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <resource> <id>",
	Short: "Show a single record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRecordID(args[1])
		if err != nil {
			return err
		}

		rec, err := app.GetRecord(cmd.Context(), args[0], id)
		if err != nil {
			return fmt.Errorf("failed to get record: %w", err)
		}

		if jsonOutput {
			return printJSON(rec)
		}

		return printRecordHuman(rec)
	},
}

func init() {
	recordsCmd.AddCommand(getCmd)
}
