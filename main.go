package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"f1results/internal/browser"
	"f1results/internal/fetcher"
	"f1results/internal/formatter"
	"f1results/internal/log"
	"f1results/internal/manifest"
	"f1results/internal/output"
	"f1results/internal/scraper"
	"f1results/internal/sites/formula1"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var version = "dev"

const envPrefix = "F1R"

var (
	cfgFile      string
	startYear    int
	endYear      int
	outputDir    string
	outputFormat string
	baseURL      string
	waitFor      string
	listingWait  time.Duration
	sessionWait  time.Duration
	pause        time.Duration
	timeout      time.Duration
	showUI       bool
	proxyURL     string
	userAgent    string
	manifestPath string
	logLevel     string
	logFormat    string
)

func main() {
	defaults := scraper.DefaultOptions(2025)

	var rootCmd = &cobra.Command{
		Use:     "f1results",
		Short:   "Scrape Formula 1 session results into CSV files",
		Version: version,
		Long: `f1results drives a headless browser through the results pages of formula1.com
and writes every session results table it finds (qualifying, sprint, starting grid,
fastest laps, pit stops, race result) to <output>/<year>/<race>/<session>.csv.
Sessions that do not exist for a race weekend are skipped.`,
		Example: `  # Scrape the 2025 season into ./f1_data
  f1results

  # Scrape several seasons and keep a manifest of every page visited
  f1results --start-year 2018 --end-year 2024 --manifest runs.db

  # Use fixed sleeps instead of waiting for the results table
  f1results --wait-for time --session-wait 3s`,
		Args:         cobra.NoArgs,
		PreRunE:      initConfig,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.f1results.yml)")
	rootCmd.Flags().IntVar(&startYear, "start-year", defaults.StartYear, "First season to scrape")
	rootCmd.Flags().IntVar(&endYear, "end-year", defaults.EndYear, "Last season to scrape (inclusive)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "f1_data", "Output root directory")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", formatter.FormatCSV, "Output format (csv, markdown)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", formula1.DefaultBaseURL, "Results site base URL")
	rootCmd.Flags().StringVarP(&waitFor, "wait-for", "w", string(defaults.WaitFor), "Wait strategy (element, time)")
	rootCmd.Flags().DurationVar(&listingWait, "listing-wait", defaults.ListingWait, "Settle time for race listing pages")
	rootCmd.Flags().DurationVar(&sessionWait, "session-wait", defaults.SessionWait, "Settle time for session result pages")
	rootCmd.Flags().DurationVar(&pause, "pause", defaults.Pause, "Pause between session requests")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Page navigation timeout")
	rootCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", "", "Proxy URL (e.g. http://127.0.0.1:7890), defaults to F1R_PROXY env var")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", browser.DefaultUserAgent, "Browser user agent")
	rootCmd.Flags().StringVar(&manifestPath, "manifest", "", "SQLite file recording every session visit (disabled when empty)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}
	if err := log.Init(logLevel, logFormat); err != nil {
		return err
	}
	logger := log.Logger
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	writer, err := output.NewWriter(outputDir, outputFormat)
	if err != nil {
		return err
	}

	options := []scraper.Option{
		scraper.WithLogger(logger),
		scraper.WithProgress(os.Stdout),
	}
	if manifestPath != "" {
		store, err := manifest.Open(manifestPath)
		if err != nil {
			return err
		}
		defer store.Close()
		options = append(options, scraper.WithRecorder(store))
	}

	b, err := browser.New(browser.Config{
		Headless:  !showUI,
		ProxyURL:  proxyURL,
		UserAgent: userAgent,
	})
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn("failed to close browser", zap.Error(err))
		}
		fmt.Fprintln(os.Stdout, "\nBrowser closed.")
	}()

	s := scraper.New(
		fetcher.NewFetcher(b, timeout, logger),
		formula1.NewSite(baseURL),
		writer,
		scraper.Options{
			StartYear:   startYear,
			EndYear:     endYear,
			WaitFor:     fetcher.WaitStrategy(waitFor),
			ListingWait: listingWait,
			SessionWait: sessionWait,
			Pause:       pause,
		},
		options...,
	)

	runErr := s.Run(ctx)

	fmt.Fprintln(os.Stdout)
	s.Summary().Render(os.Stdout)

	if runErr != nil {
		logger.Error("run aborted", zap.String("run_id", s.RunID()), zap.Error(runErr))
		return fmt.Errorf("failed to scrape: %w", runErr)
	}

	fmt.Fprintf(os.Stdout, "\n✓ All done! Check the '%s' folder for all race data\n", writer.Root())
	return nil
}

func validateFlags() error {
	if startYear > endYear {
		return fmt.Errorf("--start-year (%d) must not be after --end-year (%d)", startYear, endYear)
	}

	validFormats := map[string]bool{}
	for _, f := range formatter.Formats {
		validFormats[f] = true
	}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format: %s", outputFormat)
	}

	validStrategies := map[string]bool{
		string(fetcher.WaitStrategyElement): true,
		string(fetcher.WaitStrategyTime):    true,
	}
	if !validStrategies[waitFor] {
		return fmt.Errorf("invalid wait strategy: %s", waitFor)
	}

	if listingWait < 0 || sessionWait < 0 || pause < 0 {
		return fmt.Errorf("wait and pause durations must not be negative")
	}

	if outputDir == "" {
		return fmt.Errorf("--output must not be empty")
	}

	return nil
}

// initConfig reads the config file and F1R_* environment variables into
// every flag not set on the command line.
func initConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".f1results")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return bindFlags(cmd, v)
}

// bindFlags applies viper values (config file and environment) to flags the
// user did not set explicitly.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't contain dashes: --start-year maps to F1R_START_YEAR.
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				errs = append(errs, fmt.Errorf("could not bind env var %s: %w", f.Name, err))
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				errs = append(errs, fmt.Errorf("could not set flag value for %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}
