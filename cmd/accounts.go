package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tda-tools/tdactl/tda"
)

var accountFields string

// accountsCmd represents the accounts command
var accountsCmd = &cobra.Command{
	Use:   "accounts [accountID]",
	Short: "Show balances for linked accounts",
	Long: `Show balances for all linked accounts, or for a single account when an
account ID is given (or tda.account_id is set in the config).`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)

	accountsCmd.Flags().StringVar(&accountFields, "fields", "", "additional sections to request (positions, orders)")
}

func runAccounts(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := ensureAccessToken(ctx); err != nil {
		return err
	}

	accountID := cfg.TDA.AccountID
	if len(args) == 1 {
		accountID = args[0]
	}

	var accounts []tda.Account
	if accountID != "" {
		account, err := client.GetAccount(ctx, accountID, tda.GetAccountParams{Fields: accountFields})
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		accounts = []tda.Account{*account}
	} else {
		var err error
		accounts, err = client.GetAccounts(ctx, tda.GetAccountsParams{Fields: accountFields})
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts found.")
		return nil
	}

	fmt.Println(strings.Repeat("━", 78))
	fmt.Printf("%-14s %-8s %-12s %-12s %s\n", "ACCOUNT ID", "TYPE", "DAY TRADER", "ROUND TRIPS", "LIQUIDATION VALUE")
	fmt.Println(strings.Repeat("━", 78))

	for _, account := range accounts {
		margin, err := account.SecuritiesAccount.Margin()
		if err != nil {
			logger.Warn().Err(err).Msg("Skipping account of unsupported type")
			continue
		}

		liquidation := "n/a"
		if margin.CurrentBalances.LiquidationValue != nil {
			liquidation = fmt.Sprintf("%.2f", *margin.CurrentBalances.LiquidationValue)
		}

		fmt.Printf("%-14s %-8s %-12t %-12d %s\n",
			margin.AccountID, margin.Type, margin.IsDayTrader, margin.RoundTrips, liquidation)
	}
	fmt.Println(strings.Repeat("━", 78))

	return nil
}
