package main

import (
	"context"
	"flag"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"prosperity-go/internal/config"
	"prosperity-go/internal/exchange"
	"prosperity-go/internal/execution"
	"prosperity-go/internal/market"
	"prosperity-go/internal/metrics"
	"prosperity-go/internal/paper"
	"prosperity-go/internal/strategy"
	"prosperity-go/internal/util"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", envOr("PROSPERITY_CONFIG", defaultConfigPath), "path to the YAML config")
	seedPath := flag.String("seed", "", "optional JSON-lines snapshots used to prime price history")
	recorded := flag.Bool("recorded-positions", false, "trust snapshot positions instead of simulating fills")
	flag.Parse()

	boot := util.NewLogger(os.Getenv("PROSPERITY_LOG_LEVEL"))
	cfg, err := config.Load(*configPath)
	if err != nil {
		boot.Fatal().Err(err).Str("path", *configPath).Msg("load config")
	}
	log := util.NewLogger(envOr("PROSPERITY_LOG_LEVEL", cfg.App.LogLevel)).With().Str("app", cfg.App.Name).Logger()

	if cfg.App.MetricsAddr != "" {
		_ = metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctrl, err := strategy.New(cfg.Engine, strategy.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("build controller")
	}
	state := ctrl.NewState()
	if *seedPath != "" {
		past, err := exchange.LoadSnapshots(*seedPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *seedPath).Msg("load seed snapshots")
		}
		ctrl.Seed(state, past)
		log.Info().Int("snapshots", len(past)).Msg("history seeded")
	}

	ledger := paper.NewLedger(1024)
	recorders := []paper.FillRecorder{ledger}
	var sessionOpts []paper.SessionOption
	if cfg.Paper.FillsPath != "" {
		recorder, err := paper.NewJSONLRecorder(cfg.Paper.FillsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open fills recorder")
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				log.Error().Err(err).Msg("close fills recorder")
			}
		}()
		recorders = append(recorders, recorder)
		sessionOpts = append(sessionOpts, paper.WithTickWriter(recorder))
	}
	if *recorded {
		sessionOpts = append(sessionOpts, paper.WithRecordedPositions())
	}

	account := paper.NewAccount(cfg.Paper.StartingCash, ctrl.Limits(), recorders...)
	session := paper.NewSession(ctrl, state, execution.NewExecutor(log), account, log, sessionOpts...)

	feed := exchange.NewFeed(cfg.Feed.Provider, log, exchange.WithPath(cfg.Feed.Path), exchange.WithURL(cfg.Feed.URL))
	snaps := make(chan market.Snapshot, 1024)
	go func() {
		defer close(snaps)
		if err := feed.Run(ctx, snaps); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("feed stopped")
		}
	}()

	log.Info().Int("instruments", len(ctrl.Symbols())).Str("feed", cfg.Feed.Provider).Msg("paper engine started")
	for snap := range snaps {
		if _, err := session.Step(snap); err != nil {
			log.Error().Err(err).Int64("ts", snap.Timestamp).Msg("step failed")
			cancel()
			break
		}
	}

	summary := session.Summary()
	for _, sym := range ctrl.Symbols() {
		log.Info().Str("sym", string(sym)).Int("position", summary.Positions[sym]).Int("volume", ledger.Volume(sym)).Msg("final position")
	}
	log.Info().
		Int("ticks", session.Steps()).
		Float64("cash", summary.Cash).
		Float64("equity", summary.Equity).
		Float64("pnl", summary.PnL).
		Msg("paper engine stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
