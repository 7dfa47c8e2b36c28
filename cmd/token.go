package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tda-tools/tdactl/tokenstore"
)

// tokenCmd groups token management subcommands
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the cached access token",
}

// tokenShowCmd represents the token show command
var tokenShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show the stored access token's expiry and scopes",
	PreRunE: initializeApp,
	RunE:    runTokenShow,
}

// tokenRefreshCmd represents the token refresh command
var tokenRefreshCmd = &cobra.Command{
	Use:     "refresh",
	Short:   "Force-refresh the access token and store it",
	PreRunE: initializeApp,
	RunE:    runTokenRefresh,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenRefreshCmd)
}

func runTokenShow(cmd *cobra.Command, args []string) error {
	token, err := store.Load(context.Background())
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			fmt.Println("No token stored. Run 'tdactl token refresh' to fetch one.")
			return nil
		}
		return err
	}

	state := "valid"
	if token.Expired() {
		state = "expired"
	}

	fmt.Printf("Token:   %s\n", redactToken(token.Token))
	fmt.Printf("Expires: %s (%s)\n", time.UnixMilli(token.ExpiresAt).Format(time.RFC3339), state)
	fmt.Printf("Scopes:  %s\n", strings.Join(token.Scope, ", "))

	return nil
}

func runTokenRefresh(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := refreshAccessToken(ctx); err != nil {
		return err
	}

	token := client.AccessToken()
	fmt.Printf("Fetched new token, valid until %s\n",
		time.UnixMilli(token.ExpiresAt).Format(time.RFC3339))

	return nil
}

// redactToken keeps just enough of the token to recognize it in logs.
func redactToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "…" + token[len(token)-4:]
}
