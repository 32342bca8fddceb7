// Package quota implements a fixed-window request quota shared across
// proxy instances via Redis. Each client gets a fixed number of
// requests per window; the counter lives next to the response cache so
// all replicas enforce the same budget.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	quotaRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solar_quota_rejections_total",
		Help: "Total number of requests rejected by the fixed quota",
	})

	quotaErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solar_quota_errors_total",
		Help: "Total number of quota counter errors (requests allowed through)",
	})
)

// Limiter enforces a fixed request quota per client and window.
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	logger zerolog.Logger
}

// NewLimiter creates a quota limiter. A limit <= 0 disables enforcement.
func NewLimiter(redisClient *redis.Client, limit int, window time.Duration, logger zerolog.Logger) *Limiter {
	if window < time.Second {
		window = time.Hour
	}
	return &Limiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Enabled reports whether the limiter enforces a quota.
func (l *Limiter) Enabled() bool {
	return l.limit > 0
}

// Allow records one request for clientID and reports whether it fits
// within the current window's quota. Counter errors fail open: the
// quota protects upstreams, it must not take the proxy down with Redis.
func (l *Limiter) Allow(ctx context.Context, clientID string) bool {
	if !l.Enabled() {
		return true
	}

	key := l.windowKey(clientID)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		quotaErrorsTotal.Inc()
		l.logger.Warn().Err(err).Str("client", clientID).Msg("Quota counter unavailable, allowing request")
		return true
	}

	// First hit of the window sets the expiry
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn().Err(err).Str("client", clientID).Msg("Failed to set quota window expiry")
		}
	}

	if count > int64(l.limit) {
		quotaRejectionsTotal.Inc()
		l.logger.Warn().
			Str("client", clientID).
			Int64("count", count).
			Int("limit", l.limit).
			Msg("Request rejected by quota")
		return false
	}

	return true
}

// windowKey returns the counter key for the client's current window.
// The window index is part of the key, so stale windows simply expire.
func (l *Limiter) windowKey(clientID string) string {
	windowIdx := time.Now().Unix() / int64(l.window.Seconds())
	return fmt.Sprintf("quota:%s:%d", clientID, windowIdx)
}
