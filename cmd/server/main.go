package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restoran-pos/internal/config"
	"restoran-pos/internal/database"
	"restoran-pos/internal/events"
	"restoran-pos/internal/logger"
	"restoran-pos/internal/server"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Config{})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Init(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("store could not be opened")
	}
	defer store.Close()

	publisher := openPublisher(cfg, log)
	defer publisher.Close()

	app := server.New(server.Deps{
		Config:    cfg,
		Store:     store,
		Publisher: publisher,
		Log:       log,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.HTTPPort).Str("store", cfg.StoreDriver).Msg("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

func openPublisher(cfg *config.Config, log zerolog.Logger) events.Publisher {
	if cfg.NATSURL == "" {
		return events.Noop{}
	}
	p, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		log.Error().Err(err).Msg("NATS unavailable, order events disabled")
		return events.Noop{}
	}
	log.Info().Str("subject", cfg.NATSOrderSubject).Msg("publishing order events to NATS")
	return p
}
