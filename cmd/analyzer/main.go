package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"StockSentry/internal/config"
	"StockSentry/internal/notifier"
	"StockSentry/internal/provider"
	"StockSentry/internal/recorder"
	"StockSentry/internal/runner"
)

// Exit codes, one per failure class, for the external scheduler.
const (
	exitOK     = 0
	exitConfig = 1
	exitAPI    = 2
	exitData   = 3
	exitEmail  = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath = flag.String("config", "config/config.ini", "configuration file path")
		dryRun     = flag.Bool("dry-run", false, "run analysis without sending email")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
		testEmail  = flag.Bool("test-email", false, "test SMTP connectivity and exit")
		testAPI    = flag.Bool("test-api", false, "test data provider connectivity and exit")
	)
	flag.Parse()

	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	log.Info().Msg("StockSentry starting")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("load config")
		return exitConfig
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation")
		return exitConfig
	}

	var fetcher provider.Fetcher
	switch cfg.API.Provider {
	case "alphavantage":
		fetcher = provider.NewAlphaVantageFetcher(cfg.API.BaseURL, cfg.API.APIKey, cfg.API.Timeout)
	default:
		fetcher = provider.NewYahooFetcher(cfg.API.Timeout)
	}
	log.Info().Str("provider", fetcher.Name()).Strs("symbols", cfg.Analysis.Symbols).Msg("data source configured")

	if *testAPI {
		return testAPIConnectivity(fetcher, cfg, log)
	}

	needEmail := !*dryRun || *testEmail
	if needEmail {
		if err := cfg.ValidateEmail(); err != nil {
			log.Error().Err(err).Msg("email configuration")
			return exitConfig
		}
	}

	var notif notifier.Notifier = notifier.NoopNotifier{}
	var emailNotifier *notifier.EmailNotifier
	if needEmail {
		emailNotifier = notifier.NewEmailNotifier(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.Username, cfg.Email.Password, cfg.Email.UseTLS,
			cfg.Email.FromName, cfg.Email.FromAddress, cfg.Email.ToAddresses,
		)
		notif = emailNotifier
	}

	if *testEmail {
		if err := emailNotifier.TestConnection(); err != nil {
			log.Error().Err(err).Msg("email configuration test failed")
			return exitEmail
		}
		fmt.Println("email configuration test successful")
		return exitOK
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	r := runner.New(fetcher, notif, rec, cfg, *dryRun, log)
	if err := r.Run(); err != nil {
		log.Error().Err(err).Msg("analysis run failed")
		return exitCodeFor(err)
	}

	log.Info().Msg("analysis run completed")
	return exitOK
}

func testAPIConnectivity(fetcher provider.Fetcher, cfg *config.Config, log zerolog.Logger) int {
	symbol := cfg.Analysis.Symbols[0]
	points, err := fetcher.FetchDailyCloses(symbol, 5)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("API connectivity test failed")
		return exitAPI
	}
	latest := points[len(points)-1]
	fmt.Printf("API connectivity test successful: %s close %.2f on %s\n",
		symbol, latest.Close, latest.Date.Format("2006-01-02"))
	return exitOK
}

func exitCodeFor(err error) int {
	var stageErr *runner.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case runner.StageFetch:
			return exitAPI
		case runner.StageAnalyze:
			return exitData
		case runner.StageNotify:
			return exitEmail
		}
	}
	return exitData
}
