package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/config"
	v1 "github.com/hearth-budget/backend/internal/controllers/v1"
	"github.com/hearth-budget/backend/internal/events"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/rates"
	"github.com/hearth-budget/backend/internal/router"
	"github.com/hearth-budget/backend/internal/wizard"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//	@title			Hearth
//	@description	The backend for Hearth, a household budget planner for two currencies.
//	@BasePath		/

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	if cfg.Postgres() {
		if err := models.ConnectPostgres(cfg.PostgresDSN()); err != nil {
			log.Fatal().Err(err).Msg("Database")
		}
	} else {
		err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
		if err != nil {
			log.Fatal().Err(err).Msg("Database")
		}

		if err := models.Connect(cfg.DBPath); err != nil {
			log.Fatal().Err(err).Msg("Database")
		}
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("Events")
		}
		publisher = p
	}
	defer publisher.Close()

	provider := rates.NewProvider(models.DB, rates.NewClient(cfg.ExchangeRateAPIURL, cfg.ExchangeRateAPIKey, nil))

	co := v1.Controller{
		Rates: provider,
		Wizards: wizard.NewRegistry(wizard.GormLedger{DB: models.DB}, provider, wizard.Options{
			Timeout: cfg.TransferWizardTimeout,
			Events:  publisher,
		}),
		Events: publisher,
	}

	r, teardown, err := router.Config(cfg.BaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("Router")
	}
	defer teardown()

	router.AttachRoutes(co, r.Group("/"))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shut down")
	}
}
