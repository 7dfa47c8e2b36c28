package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tda-tools/tdactl/filter"
	"github.com/tda-tools/tdactl/tda"
)

// maxHistoryFetches bounds how many price-history requests are in
// flight at once when several symbols are requested.
const maxHistoryFetches = 4

var (
	historyPeriodType    string
	historyPeriod        string
	historyFrequencyType string
	historyFrequency     string
	historyStartDate     string
	historyEndDate       string
	historyExtendedHours bool
	historyFilter        string
	historyCandles       bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <symbol>...",
	Short: "Show price history for one or more symbols",
	Long: `Fetch OHLCV candles for the given symbols. Multiple symbols are
fetched concurrently.

With --candles the individual candles are printed; --filter narrows
them with an expression over the candle's fields, e.g.:

  tdactl history AAPL --period-type day --period 5 --candles
  tdactl history AAPL MSFT --candles --filter 'Close > Open'`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyPeriodType, "period-type", "", "type of period (day, month, year, ytd)")
	historyCmd.Flags().StringVar(&historyPeriod, "period", "", "number of periods")
	historyCmd.Flags().StringVar(&historyFrequencyType, "frequency-type", "", "candle frequency type (minute, daily, weekly, monthly)")
	historyCmd.Flags().StringVar(&historyFrequency, "frequency", "", "number of frequency units per candle")
	historyCmd.Flags().StringVar(&historyStartDate, "start", "", "start date in milliseconds since epoch")
	historyCmd.Flags().StringVar(&historyEndDate, "end", "", "end date in milliseconds since epoch")
	historyCmd.Flags().BoolVar(&historyExtendedHours, "extended-hours", false, "include extended hours data")
	historyCmd.Flags().StringVarP(&historyFilter, "filter", "f", "", "candle filter expression")
	historyCmd.Flags().BoolVar(&historyCandles, "candles", false, "print individual candles")
}

func historyParams(cmd *cobra.Command) tda.GetPriceHistoryParams {
	params := tda.GetPriceHistoryParams{
		PeriodType:    historyPeriodType,
		Period:        historyPeriod,
		FrequencyType: historyFrequencyType,
		Frequency:     historyFrequency,
		StartDate:     historyStartDate,
		EndDate:       historyEndDate,
	}
	// Only send the flag when the user said something either way.
	if cmd.Flags().Changed("extended-hours") {
		params.NeedExtendedHoursData = tda.Bool(historyExtendedHours)
	}
	return params
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var candleFilter *filter.Filter
	if historyFilter != "" {
		var err error
		candleFilter, err = filter.Compile(historyFilter)
		if err != nil {
			return err
		}
	}

	if err := ensureAccessToken(ctx); err != nil {
		return err
	}

	params := historyParams(cmd)

	// Fetch all symbols with bounded concurrency. The client's token
	// slot is only read here, never written, so sharing it is fine.
	results := make(map[string]*tda.PriceHistory)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxHistoryFetches)

	for _, symbol := range args {
		g.Go(func() error {
			history, err := client.GetPriceHistory(ctx, symbol, params)
			if err != nil {
				return fmt.Errorf("failed to get price history for %s: %w", symbol, err)
			}

			mu.Lock()
			results[symbol] = history
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	symbols := make([]string, 0, len(results))
	for symbol := range results {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		if err := printHistory(results[symbol], candleFilter); err != nil {
			return err
		}
	}

	return nil
}

func printHistory(history *tda.PriceHistory, candleFilter *filter.Filter) error {
	candles := history.Candles
	if candleFilter != nil {
		filtered := candles[:0:0]
		for _, candle := range candles {
			ok, err := candleFilter.MatchCandle(candle)
			if err != nil {
				return err
			}
			if ok {
				filtered = append(filtered, candle)
			}
		}
		candles = filtered
	}

	fmt.Printf("%s: %d candles", history.Symbol, len(candles))
	if len(candles) > 0 {
		first := time.UnixMilli(candles[0].Datetime).Format("2006-01-02 15:04")
		last := time.UnixMilli(candles[len(candles)-1].Datetime).Format("2006-01-02 15:04")
		fmt.Printf(" (%s … %s, last close %.2f)", first, last, candles[len(candles)-1].Close)
	}
	fmt.Println()

	if !historyCandles || len(candles) == 0 {
		return nil
	}

	fmt.Println(strings.Repeat("━", 86))
	fmt.Printf("%-18s %10s %10s %10s %10s %12s\n", "TIME", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME")
	fmt.Println(strings.Repeat("━", 86))
	for _, c := range candles {
		fmt.Printf("%-18s %10.2f %10.2f %10.2f %10.2f %12d\n",
			time.UnixMilli(c.Datetime).Format("2006-01-02 15:04"),
			c.Open, c.High, c.Low, c.Close, c.Volume)
	}
	fmt.Println(strings.Repeat("━", 86))

	return nil
}
