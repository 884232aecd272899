package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidstats/internal/config"
	"vidstats/internal/handler"
	"vidstats/internal/logger"
	"vidstats/internal/port"
	"vidstats/internal/repository/mongodb"
	"vidstats/internal/repository/postgres"
	"vidstats/internal/router"
	"vidstats/internal/service"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(&cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()
	log.WithField("driver", cfg.Store.Driver).Info("store connected")

	// Initialize services
	statsSvc := service.NewChannelStatsService(store, &cfg.Stats, log)
	videoSvc := service.NewChannelVideoService(store, &cfg.Stats, log)

	// Initialize handlers
	responder := handler.NewErrorResponder(log)
	channelH := handler.NewChannelHandler(statsSvc, videoSvc, responder)
	healthH := handler.NewHealthHandler(store)

	r := router.Setup(log, cfg.CORS.AllowedOrigins, channelH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// openStore connects the configured backing store and returns it with its closer.
func openStore(ctx context.Context, cfg *config.Config) (port.ChannelStore, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewChannelRepo(db), func() { _ = db.Close() }, nil
	default:
		client, err := mongodb.NewClient(ctx, &cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closer := func() { _ = client.Disconnect(context.Background()) }
		return mongodb.NewChannelRepo(client.Database(cfg.Mongo.Database)), closer, nil
	}
}
