package commands

import (
	"fmt"

	"storefront-api/database"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo catalog data and a demo user",
	Long: `Inserts demo brands, categories, products and a demo user with one address.
Does nothing when products already exist. Prints a one-line summary on stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		summary, err := database.Seed(cmd.Context(), db)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
