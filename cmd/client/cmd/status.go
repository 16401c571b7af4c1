// cmd/client/cmd/status.go
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the server is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.CheckConnection(); err != nil {
			if jsonOutput {
				_ = printJSON(map[string]string{
					"status": "unreachable",
					"server": cfg.ServerAddress,
					"error":  err.Error(),
				})
			}
			return fmt.Errorf("server %s is unreachable: %w", cfg.ServerAddress, err)
		}

		if jsonOutput {
			return printJSON(map[string]string{
				"status": "ok",
				"server": cfg.ServerAddress,
			})
		}

		fmt.Printf("%s Server %s is reachable\n", color.GreenString("✓"), cfg.ServerAddress)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
