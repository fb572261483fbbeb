// Package main is the entry point for the exchange rates Telegram bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/bot"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/config"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/exchange"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/logger"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("exchange-rates-bot %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)
	if cfg.LogJSON {
		logger.SetJSON()
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Log.Error().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	exchanger := exchange.NewFreeCurrencyClient(
		cfg.RatesAPIBaseURL,
		cfg.RatesAPIKey,
		cfg.EarliestRateDate,
		cfg.HTTPTimeout,
	)

	ratesBot, err := bot.New(cfg, exchanger)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create bot")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	ratesBot.Start(ctx)
}
