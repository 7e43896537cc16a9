package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/api"
	"github.com/aristath/tradebook/internal/config"
	"github.com/aristath/tradebook/internal/format"
	"github.com/aristath/tradebook/pkg/logger"
)

// uiAnnotation marks commands that own the terminal; they log to a file.
const uiAnnotation = "ui"

var (
	apiURLFlag   string
	logLevelFlag string

	cfg     *config.Config
	log     zerolog.Logger
	client  *api.Client
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "Track stock buys, sells and open positions",
	Long: `Tradebook is a terminal client for a stock transaction tracker.

Without a subcommand it opens the interactive UI with two views:
  - Dashboard: summary totals and a chart of current holdings
  - Transactions: sortable table with add, edit, delete and CSV import

The subcommands expose the same backend operations for scripting.`,
	Annotations:        map[string]string{uiAnnotation: "true"},
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "backend base URL (overrides TRADEBOOK_API_URL and saved settings)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
}

// setup loads configuration, builds the logger and the API client.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if apiURLFlag != "" {
		if err := config.ValidateAPIURL(apiURLFlag); err != nil {
			return err
		}
		cfg.APIURL = apiURLFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	logCfg := logger.Config{Level: cfg.LogLevel, Pretty: true}
	if cmd.Annotations[uiAnnotation] == "true" {
		f, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		logCfg.Output = f
	}
	log = logger.New(logCfg)
	logger.SetGlobalLogger(log)

	client = api.NewClient(cfg.APIURL, cfg.HTTPTimeout, log)
	log.Debug().Str("api_url", cfg.APIURL).Str("command", cmd.Name()).Msg("Configuration loaded")
	return nil
}

func teardown(*cobra.Command, []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

func formatter() format.Formatter {
	return format.New(cfg.Currency, cfg.DateLayout)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// outputFile creates path, or returns stdout when path is "-".
func outputFile(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{out(cmd)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
