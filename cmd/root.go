package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reelfeed/reelfeed/config"
	"github.com/reelfeed/reelfeed/tmdb"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client

	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build information stamped in at link time.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reelfeed",
	Short: "Browse a movie catalog from the terminal",
	Long: `reelfeed is a CLI client for a TMDB-style movie catalog. It browses
the natural lists (popular, now playing, top rated, upcoming) or the
discovery endpoint when sort/genre/rating/year filters are active,
walking pages lazily the way a scrolling list would.`,
	PersistentPreRunE: initializeApp,
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

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and the catalog client
func initializeApp(cmd *cobra.Command, args []string) error {
	// These commands run without a configured catalog service.
	switch cmd.Name() {
	case "genres", "update", "version", "help", "completion":
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	tmdbClient, err = tmdb.NewClient(
		cfg.TMDB.URL,
		cfg.TMDB.AccessToken,
		logger,
		tmdb.WithTimeout(time.Duration(cfg.TMDB.TimeoutSecs)*time.Second),
		tmdb.WithLanguage(cfg.TMDB.Language),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the catalog service",
	Long:  `Test the connection and access token against the catalog service and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Printf("Testing connection to %s...\n", cfg.TMDB.URL)
	if err := tmdbClient.TestConnection(ctx); err != nil {
		return err
	}
	fmt.Println("✓ Connection successful!")

	page, err := tmdbClient.MovieList(ctx, tmdb.ListPopular, 1)
	if err != nil {
		return fmt.Errorf("failed to fetch popular movies: %w", err)
	}

	fmt.Printf("\nCatalog statistics:\n")
	fmt.Printf("- Popular movies: %d across %d pages\n", page.TotalResults, page.TotalPages)
	fmt.Printf("- Page size: %d\n", len(page.Results))
	fmt.Printf("- Language: %s\n", cfg.TMDB.Language)

	return nil
}

// versionCmd prints the stamped build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reelfeed %s (built %s)\n", version, buildTime)
	},
}
