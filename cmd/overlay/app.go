package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/overlay"
	"github.com/aretw0/overlay/internal/config"
	"github.com/aretw0/overlay/internal/logging"
	redisAdapter "github.com/aretw0/overlay/pkg/adapters/redis"
	"github.com/aretw0/overlay/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app bundles what every command needs.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	site     *overlay.Site
	registry *prometheus.Registry
	cache    *redisAdapter.Cache
}

// setup loads the configuration, applies flag overrides and builds the site.
func setup(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Dir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	opts := []overlay.Option{
		overlay.WithLogger(logger),
		overlay.WithBaseURL(cfg.BaseURL),
		overlay.WithMetrics(observability.NewMetrics(a.registry)),
	}

	if cfg.Redis.Addr != "" {
		var cacheOpts []redisAdapter.Option
		if cfg.Redis.Prefix != "" {
			cacheOpts = append(cacheOpts, redisAdapter.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			cacheOpts = append(cacheOpts, redisAdapter.WithTTL(cfg.Redis.TTL))
		}
		cache := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cacheOpts...)

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("Redis unavailable, rendering without cache", "addr", cfg.Redis.Addr, "error", err)
			cache.Close()
		} else {
			a.cache = cache
			opts = append(opts, overlay.WithCache(cache))
		}
	}

	site, err := overlay.New(cfg.Dir, opts...)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("error initializing overlay: %w", err)
	}
	a.site = site
	return a, nil
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("Failed to close redis", "error", err)
		}
	}
}
