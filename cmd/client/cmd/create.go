// cmd/client/cmd/create.go
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	createFields []string
	createData   string
)

var createCmd = &cobra.Command{
	Use:   "create <resource>",
	Short: "Create a record",
	Long: `Create a record from the given fields. The id is assigned by the server.

Fields come from repeated --field key=value flags, from a --data JSON object,
or both, with --field winning on overlap. Flag values that read as JSON
become numbers, booleans or null; anything else stays a string:

  stockroom records create items --field name=Widget --field stock=5
  stockroom records create notes --data '{"title": "Standup", "body": "9:30 daily"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(createData, createFields)
		if err != nil {
			return err
		}

		rec, err := app.CreateRecord(cmd.Context(), args[0], fields)
		if err != nil {
			return fmt.Errorf("failed to create record: %w", err)
		}

		if jsonOutput {
			return printJSON(rec)
		}

		fmt.Printf("%s Created %s record %d\n\n", color.GreenString("✓"), args[0], rec.ID)
		return printRecordHuman(rec)
	},
}

func init() {
	createCmd.Flags().StringArrayVar(&createFields, "field", nil, "field as key=value, repeatable")
	createCmd.Flags().StringVar(&createData, "data", "", "record fields as a JSON object")

	recordsCmd.AddCommand(createCmd)
}
