package commands

import (
	"fmt"
	"time"

	"storefront-api/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	tokenUser  string
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a bearer token for a user (development helper)",
	Long: `Signs a JWT for the given user id with JWT_SECRET. No credentials are checked;
use it to call the protected routes against a seeded database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(tokenUser)
		if err != nil {
			return errors.Wrap(err, "invalid --user")
		}
		token, err := utils.GenerateToken(userID, tokenEmail, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id (uuid)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", utils.DefaultTokenTTL, "Token lifetime")
	tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
