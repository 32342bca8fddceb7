// Package proxy implements the HTTP surface of the solar-sim API: three
// caching proxy handlers (Overpass queries, Open-Meteo climate history,
// canopy height tiles) and a health endpoint, mounted under /api/v1.
//
// Each handler is a pure function of (request, cache, upstream client):
// validate input, derive the cache key, serve a hit, otherwise fetch
// upstream once, store and respond. There is no per-key locking;
// concurrent misses for the same key may both fetch and both write,
// which is harmless because values are deterministic for a given key.
package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/solar-sim/solar-sim-api/pkg/logging"
	"github.com/solar-sim/solar-sim-api/pkg/metrics"
)

// ServiceName identifies this service in health responses.
const ServiceName = "solar-sim-api"

// Default TTLs, matching how fast each upstream dataset changes.
const (
	DefaultOverpassTTL = 7 * 24 * time.Hour   // OSM data changes slowly
	DefaultClimateTTL  = 30 * 24 * time.Hour  // historical data doesn't change
	DefaultCanopyTTL   = 365 * 24 * time.Hour // static dataset
)

// Cache is the proxy's view of the shared response cache.
// Implementations must return cache.ErrCacheMiss from Get for absent
// or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TileStore resolves canopy tiles from local disk. A tile found here is
// authoritative and short-circuits both the cache and upstream tiers.
// Implementations must return tilestore.ErrTileNotFound for absent tiles.
type TileStore interface {
	Open(quadkey string) (io.ReadCloser, int64, error)
}

// OverpassClient performs Overpass API queries.
type OverpassClient interface {
	Query(ctx context.Context, query string) ([]byte, error)
}

// ClimateClient fetches daily temperature history for a location.
type ClimateClient interface {
	DailyTemperature(ctx context.Context, lat, lng float64) ([]byte, error)
}

// CanopyClient fetches canopy tiles from the tile origin.
type CanopyClient interface {
	FetchTile(ctx context.Context, quadkey string) ([]byte, error)
}

// Config holds the server dependencies and cache TTLs.
type Config struct {
	Cache    Cache
	Tiles    TileStore
	Overpass OverpassClient
	Climate  ClimateClient
	Canopy   CanopyClient

	// Zero values fall back to the package defaults.
	OverpassTTL time.Duration
	ClimateTTL  time.Duration
	CanopyTTL   time.Duration
}

// Server holds the proxy handlers.
type Server struct {
	cache    Cache
	tiles    TileStore
	overpass OverpassClient
	climate  ClimateClient
	canopy   CanopyClient

	overpassTTL time.Duration
	climateTTL  time.Duration
	canopyTTL   time.Duration

	logger zerolog.Logger
}

// NewServer creates the proxy server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if cfg.Tiles == nil {
		return nil, fmt.Errorf("tile store is required")
	}
	if cfg.Overpass == nil || cfg.Climate == nil || cfg.Canopy == nil {
		return nil, fmt.Errorf("all three upstream clients are required")
	}

	if cfg.OverpassTTL <= 0 {
		cfg.OverpassTTL = DefaultOverpassTTL
	}
	if cfg.ClimateTTL <= 0 {
		cfg.ClimateTTL = DefaultClimateTTL
	}
	if cfg.CanopyTTL <= 0 {
		cfg.CanopyTTL = DefaultCanopyTTL
	}

	return &Server{
		cache:       cfg.Cache,
		tiles:       cfg.Tiles,
		overpass:    cfg.Overpass,
		climate:     cfg.Climate,
		canopy:      cfg.Canopy,
		overpassTTL: cfg.OverpassTTL,
		climateTTL:  cfg.ClimateTTL,
		canopyTTL:   cfg.CanopyTTL,
		logger:      logging.NewLogger("proxy"),
	}, nil
}

// Routes builds the router: proxy endpoints under /api/v1 (with the
// given middlewares applied to that subtree only) and the Prometheus
// endpoint at /metrics, outside any quota.
func (s *Server) Routes(apiMiddlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(requestMetrics)
		for _, mw := range apiMiddlewares {
			api.Use(mw)
		}
		api.Post("/overpass/", s.handleOverpass)
		api.Get("/climate/", s.handleClimate)
		api.Get("/canopy/{quadkey}/", s.handleCanopy)
		api.Get("/health/", s.handleHealth)
	})

	return r
}
