package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tda-tools/tdactl/config"
	"github.com/tda-tools/tdactl/tda"
	"github.com/tda-tools/tdactl/tokenstore"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *tda.Client
	store   tokenstore.Store

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tdactl",
	Short: "Inspect TD Ameritrade accounts and market data",
	Long: `tdactl is a CLI for the TD Ameritrade API. It handles the OAuth2
token refresh flow for you (tokens are cached between runs) and exposes
accounts, market movers and price-history candles as typed commands.`,
}

// SetVersion sets the version information from build flags
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration, logger, token store and
// API client. Commands that talk to the API set this as their PreRunE.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create the API client
	client, err = tda.NewClient(cfg.TDA.ClientID, cfg.TDA.RefreshToken, logger)
	if err != nil {
		return fmt.Errorf("failed to create TDA client: %w", err)
	}

	// Create the token store
	store, err = newTokenStore(cfg.TokenStore)
	if err != nil {
		return fmt.Errorf("failed to create token store: %w", err)
	}

	return nil
}

// newTokenStore builds the configured token store backend
func newTokenStore(cfg config.TokenStoreConfig) (tokenstore.Store, error) {
	switch cfg.Backend {
	case "redis":
		return tokenstore.NewRedisStore(cfg.RedisURL, cfg.RedisKey)
	default:
		return tokenstore.NewFileStore(cfg.Path), nil
	}
}

// ensureAccessToken installs a usable access token on the client,
// reusing a stored one when it has not expired and refreshing (and
// persisting) otherwise.
func ensureAccessToken(ctx context.Context) error {
	token, err := store.Load(ctx)
	if err != nil && !errors.Is(err, tokenstore.ErrNotFound) {
		return fmt.Errorf("failed to load stored token: %w", err)
	}

	if token != nil && !token.Expired() {
		logger.Debug().Int64("expires_at", token.ExpiresAt).Msg("Reusing stored access token")
		client.SetAccessToken(token)
		return nil
	}

	return refreshAccessToken(ctx)
}

// refreshAccessToken unconditionally fetches a fresh token, installs
// it and saves it to the store.
func refreshAccessToken(ctx context.Context) error {
	resp, err := client.RefreshAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh access token: %w", err)
	}

	token := tda.NewAccessToken(*resp)
	client.SetAccessToken(&token)
	logger.Debug().Strs("scope", token.Scope).Msg("Fetched new access token")

	if err := store.Save(ctx, &token); err != nil {
		// A failed save only costs an extra refresh next run.
		logger.Warn().Err(err).Msg("Failed to persist access token")
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
