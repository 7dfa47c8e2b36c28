package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tda-tools/tdactl/filter"
	"github.com/tda-tools/tdactl/tda"
)

var (
	moversDirection string
	moversChange    string
	moversFilter    string
)

// moversCmd represents the movers command
var moversCmd = &cobra.Command{
	Use:   "movers <index>",
	Short: "Show top movers for a market index",
	Long: `Show the top movers for a market index such as $DJI, $COMPX or $SPX.X.

Results can be narrowed with --filter, which takes an expression over
the mover's fields, e.g.:

  tdactl movers '$DJI' --filter 'Change > 2 && Direction == "up"'
  tdactl movers '$COMPX' --filter 'contains(Description, "pharma")'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runMovers,
}

func init() {
	rootCmd.AddCommand(moversCmd)

	moversCmd.Flags().StringVar(&moversDirection, "direction", "", "restrict to movers going up or down")
	moversCmd.Flags().StringVar(&moversChange, "change", "", "change type to report (value or percent)")
	moversCmd.Flags().StringVarP(&moversFilter, "filter", "f", "", "filter expression")
}

func runMovers(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var moverFilter *filter.Filter
	if moversFilter != "" {
		var err error
		moverFilter, err = filter.Compile(moversFilter)
		if err != nil {
			return err
		}
	}

	if err := ensureAccessToken(ctx); err != nil {
		return err
	}

	movers, err := client.GetMovers(ctx, args[0], tda.GetMoversParams{
		Direction: moversDirection,
		Change:    moversChange,
	})
	if err != nil {
		return fmt.Errorf("failed to get movers: %w", err)
	}

	var matched []tda.Mover
	for _, mover := range movers {
		if moverFilter != nil {
			ok, err := moverFilter.MatchMover(mover)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, mover)
	}

	if len(matched) == 0 {
		fmt.Println("No movers matched.")
		return nil
	}

	fmt.Println(strings.Repeat("━", 90))
	fmt.Printf("%-8s %-36s %-5s %10s %10s %12s\n", "SYMBOL", "DESCRIPTION", "DIR", "LAST", "CHANGE", "VOLUME")
	fmt.Println(strings.Repeat("━", 90))

	for _, m := range matched {
		description := m.Description
		if len(description) > 34 {
			description = description[:31] + "..."
		}
		fmt.Printf("%-8s %-36s %-5s %10.2f %10.4f %12d\n",
			m.Symbol, description, m.Direction, m.Last, m.Change, m.TotalVolume)
	}
	fmt.Println(strings.Repeat("━", 90))

	return nil
}
