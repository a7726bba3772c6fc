package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openamm/poolgov/internal/config"
	"github.com/openamm/poolgov/internal/governance"
	"github.com/openamm/poolgov/internal/logger"
	"github.com/openamm/poolgov/internal/state"
	"github.com/openamm/poolgov/internal/strategy"
	"github.com/openamm/poolgov/internal/web"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main is the entry point for the fee governance engine.
func main() {
	// --- 1. Initialization Phase ---
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
	}

	// Load configuration from environment variables
	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Initialize(os.Getenv("LOG_LEVEL"))
	log.Info().Msg("Pool fee governance engine starting...")

	// Initialize Database Connection
	dbCfg := state.DBConfig{
		Host: config.DBHost, Port: config.DBPort,
		User: config.DBUser, Password: config.DBPassword,
		DBName: config.DBName, SSLMode: config.DBSSLMode,
	}
	if err := state.InitDB(dbCfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer state.CloseDB()
	if err := state.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	// --- 2. Engine Construction ---
	engine := governance.NewEngine(governance.Config{
		Clock:    governance.NewIntervalClock(time.Now(), config.TickInterval),
		Invoker:  strategy.NewInvoker(config.StrategyBudget),
		Registry: strategy.NewRegistry(),
		Store:    state.NewPoolStore(),
	})

	// Restore persisted governance state so admins, overrides and counters
	// survive restarts.
	records, err := state.LoadPoolRecords()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load persisted pool records")
	}
	engine.Restore(records)

	// --- 3. Start Web Server ---
	webServer := web.NewWebServer(engine, config.WebPort)
	go func() {
		log.Info().Str("port", config.WebPort).Msg("Starting governance API server")
		if err := webServer.Start(); err != nil {
			log.Error().Err(err).Msg("Web server failed")
		}
	}()

	// --- 4. Wait for Shutdown ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, exiting")
}
