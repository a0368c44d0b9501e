// Package main is the entry point for the Telegram blackjack bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"telegram-blackjack-bot/internal/blackjack"
	"telegram-blackjack-bot/internal/bot"
	"telegram-blackjack-bot/internal/config"
)

func main() {
	// Load local .env if present (token lives there in development)
	_ = godotenv.Load()

	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := quartz.NewReal()

	// Session registry and inactivity sweeper
	registry := blackjack.NewRegistry(cfg.Game.MaxPlayers, clock)
	sweeper := blackjack.NewSweeper(registry, &blackjack.SweeperConfig{
		InactivityThreshold: cfg.Sweep.InactivityThreshold,
		Interval:            cfg.Sweep.Interval,
		ErrorBackoff:        cfg.Sweep.ErrorBackoff,
	}, clock)

	// Create bot dependencies
	deps := &bot.Dependencies{
		Config:   cfg,
		Registry: registry,
		Sweeper:  sweeper,
	}

	// Initialize bot
	telegramBot, err := bot.New(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Start the inactivity sweeper
	go sweeper.Run(ctx)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in a goroutine
	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	cancel()
	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}
