package main

import (
	"context"
	"fmt"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/collaborator"
	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/events"
	"github.com/fjod/go_cart/storefront/internal/logger"
	"github.com/fjod/go_cart/storefront/internal/storefront"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// app holds the collaborators shared by every session.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	client    *collaborator.Client
	catalog   *catalog.Catalog
	publisher events.Publisher
	closers   []func() error
}

func newApp(ctx context.Context, c *cli.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("dev") {
		cfg.LogDevelopment = c.Bool("dev")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)

	a := &app{cfg: cfg, log: log}
	a.client = collaborator.NewClient(cfg.BaseURL, cfg.RequestTimeout, collaborator.WithLogger(log))

	var cache catalog.ProductCache = catalog.NoCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		log.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))
		cache = catalog.NewRedisCache(redisClient, cfg.CatalogTTL)
		a.closers = append(a.closers, redisClient.Close)
	}
	a.catalog = catalog.New(a.client, cache, log)

	a.publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		p := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		a.publisher = p
		a.closers = append(a.closers, p.Close)
		log.Info("publishing events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	log.Info("storefront configured", zap.String("base_url", cfg.BaseURL))
	return a, nil
}

func (a *app) NewSession(id string) *storefront.Session {
	opts := []storefront.Option{
		storefront.WithLogger(a.log),
		storefront.WithPublisher(a.publisher),
		storefront.WithCustomer(a.cfg.Customer.Customer()),
		storefront.WithAddedMark(a.cfg.AddedMarkDuration),
	}
	if id != "" {
		opts = append(opts, storefront.WithID(id))
	}
	return storefront.New(a.catalog, a.client, a.client, opts...)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
