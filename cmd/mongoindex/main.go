package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"vidstats/internal/config"
	"vidstats/internal/logger"
	"vidstats/internal/repository/mongodb"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("mongoindex failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(&cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongodb.NewClient(ctx, &cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	names, err := mongodb.EnsureIndexes(ctx, client.Database(cfg.Mongo.Database))
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"database": cfg.Mongo.Database,
		"indexes":  names,
	}).Info("indexes ensured")
	return nil
}
