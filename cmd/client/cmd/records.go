// cmd/client/cmd/records.go
package cmd

import (
	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage records",
	Long:  `List, inspect, create, update and delete records of any resource the server exposes.`,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}
