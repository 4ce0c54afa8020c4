package commands

import (
	"fmt"
	"os"

	"storefront-api/config"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL string

	cfg config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront API - carts, orders and catalog over HTTP",
	Long: `Storefront API serves a product catalog, per-user shopping carts and order
placement for authenticated users and guests.

Configuration is read from the environment (and a .env file when present).
DATABASE_URL and JWT_SECRET are required.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return err
		}
		if dbURL != "" {
			os.Setenv("DATABASE_URL", dbURL)
		}
		if err := config.ValidateEnv(); err != nil {
			return err
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := loaded.ConfigureLogger(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
}
