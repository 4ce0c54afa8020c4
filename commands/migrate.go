package commands

import (
	"storefront-api/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the SQL schema migrations",
	Long:      `Runs the embedded SQL migrations against DATABASE_URL. Defaults to "up".`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := database.Up
		if len(args) == 1 {
			dir = database.Direction(args[0])
		}
		return database.RunMigrations(cfg.DatabaseURL, dir)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
