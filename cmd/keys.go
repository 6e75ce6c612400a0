// cmd/keys.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tlycrimson/bot-website-api/internal/auth"
	"golang.org/x/term"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys",
	Long:  `Commands for managing the bot and admin API keys.`,
}

var keysGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate bot and admin API keys",
	Long:  `Generates the bot and admin API keys using the configured JWT secret.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, err := resolveJWTSecret()
		if err != nil {
			return err
		}

		svc := auth.NewService(secret, 0)

		botKey, err := svc.GenerateAPIKey(auth.APIKeyBot)
		if err != nil {
			return fmt.Errorf("failed to generate bot key: %w", err)
		}

		adminKey, err := svc.GenerateAPIKey(auth.APIKeyAdmin)
		if err != nil {
			return fmt.Errorf("failed to generate admin key: %w", err)
		}

		fmt.Printf("BOTAPI_BOT_KEY=%s\n", botKey)
		fmt.Printf("BOTAPI_ADMIN_KEY=%s\n", adminKey)

		return nil
	},
}

// resolveJWTSecret reads the signing secret from the environment, prompting
// on the terminal when unset so keys are never minted with an empty secret.
func resolveJWTSecret() (string, error) {
	if secret := os.Getenv("BOTAPI_JWT_SECRET"); secret != "" {
		return secret, nil
	}

	fmt.Fprint(os.Stderr, "BOTAPI_JWT_SECRET is not set.\nEnter JWT secret: ")

	// Try to read the secret securely (hides input)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr) // Add newline after hidden input
		if err != nil {
			return "", err
		}
		secret := strings.TrimSpace(string(raw))
		if secret == "" {
			return "", fmt.Errorf("JWT secret cannot be empty")
		}
		return secret, nil
	}

	// Fallback for non-terminal (e.g., piped input)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	secret := strings.TrimSpace(line)
	if secret == "" {
		return "", fmt.Errorf("JWT secret cannot be empty")
	}
	return secret, nil
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysGenerateCmd)
}
