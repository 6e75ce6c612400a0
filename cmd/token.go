// cmd/token.go
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tlycrimson/bot-website-api/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a session token for development",
	Long:  `Mints a session token signed with the configured JWT secret, bypassing the login flow. Development use only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user-id")
		username, _ := cmd.Flags().GetString("username")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		secret, err := resolveJWTSecret()
		if err != nil {
			return err
		}

		svc := auth.NewService(secret, ttl)
		token, err := svc.GenerateSessionToken(userID, username)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}

		fmt.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("user-id", "0", "User ID claim")
	tokenCmd.Flags().String("username", "dev", "Username claim")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
}
