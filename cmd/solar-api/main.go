// Command solar-api runs the solar-sim caching proxy: Overpass query,
// climate history and canopy tile endpoints under /api/v1, backed by a
// shared Valkey/Redis cache.
package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/solar-sim/solar-sim-api/internal/config"
	"github.com/solar-sim/solar-sim-api/pkg/cache"
	"github.com/solar-sim/solar-sim-api/pkg/logging"
	"github.com/solar-sim/solar-sim-api/pkg/proxy"
	"github.com/solar-sim/solar-sim-api/pkg/quota"
	"github.com/solar-sim/solar-sim-api/pkg/tilestore"
	"github.com/solar-sim/solar-sim-api/pkg/upstream"
)

func main() {
	cfg := config.Load()

	logger := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	opts, err := redis.ParseURL(cfg.ValkeyURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid VALKEY_URL")
	}
	redisClient := redis.NewClient(opts)

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", opts.Addr).Msg("Failed to connect to Valkey")
	}
	logger.Info().Str("addr", opts.Addr).Msg("Connected to Valkey")

	tiles, err := tilestore.New(cfg.TileDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.TileDir).Msg("Failed to open tile store")
	}

	srv, err := proxy.NewServer(proxy.Config{
		Cache:       cache.NewManager(redisClient),
		Tiles:       tiles,
		Overpass:    upstream.NewOverpass(cfg.OverpassURL, cfg.OverpassTimeout),
		Climate:     upstream.NewClimate(cfg.OpenMeteoURL, cfg.ClimateTimeout),
		Canopy:      upstream.NewCanopy(cfg.CanopyTileURL, cfg.CanopyTimeout),
		OverpassTTL: cfg.OverpassTTL,
		ClimateTTL:  cfg.ClimateTTL,
		CanopyTTL:   cfg.CanopyTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create proxy server")
	}

	limiter := quota.NewLimiter(redisClient, cfg.QuotaLimit, cfg.QuotaWindow, logging.NewLogger("quota"))
	router := srv.Routes(quota.Middleware(limiter))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().
		Str("addr", addr).
		Str("tile_dir", cfg.TileDir).
		Int("quota_limit", cfg.QuotaLimit).
		Msg("Starting solar-sim proxy")

	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
