package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"StockMonitor/internal/calendar"
	"StockMonitor/internal/collector"
	"StockMonitor/internal/config"
	"StockMonitor/internal/menu"
	"StockMonitor/internal/render"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatal("load config", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("config validation", err)
	}

	logger, err := newLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fatal("init logger", err)
	}
	defer logger.Sync()

	cal, err := calendar.New(cfg.Calendar.TradingDays, cfg.Calendar.Holidays)
	if err != nil {
		fatal("init calendar", err)
	}

	fetcher := collector.NewPolygonFetcher(cfg.API, logger)
	logger.Info("StockMonitor starting",
		zap.String("data_source", fetcher.Name()),
		zap.String("config", cfgPath),
		zap.Int("max_attempts", cfg.Prompt.MaxAttempts))

	console := render.NewConsole(os.Stdout, cfg.Chart.Height, cfg.Chart.MaxCandles)
	ctrl := menu.NewController(fetcher, cal, console, os.Stdin, cfg.Prompt.MaxAttempts, logger)
	if err := ctrl.Run(context.Background()); err != nil {
		logger.Error("menu stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("StockMonitor stopped")
}

// newLogger writes human-readable logs to stderr, or to file when set, so they
// stay out of the way of the interactive screens on stdout.
func newLogger(level, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	if file != "" {
		zc.OutputPaths = []string{file}
	}
	return zc.Build()
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "[FATAL] %s: %v\n", what, err)
	os.Exit(1)
}
