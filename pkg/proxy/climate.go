package proxy

import (
	"net/http"
	"strconv"

	"github.com/solar-sim/solar-sim-api/pkg/cache"
	"github.com/solar-sim/solar-sim-api/pkg/upstream"
)

// handleClimate proxies 30-year temperature history lookups, cached on
// a ~1 km coordinate grid.
func (s *Server) handleClimate(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		writeError(w, http.StatusBadRequest, "Missing 'lat' and 'lng' parameters")
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "Invalid lat/lng values")
		return
	}

	ctx := r.Context()
	key := cache.ClimateKey(lat, lng)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		s.logger.Debug().Str("cache_key", key).Msg("Climate cache hit")
		writeJSON(w, cached)
		return
	}
	if err != cache.ErrCacheMiss {
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Climate cache read failed")
	}

	// Fetch with the rounded coordinates, so the stored response is
	// exactly what a fresh fetch for this key would return.
	data, err := s.climate.DailyTemperature(ctx, cache.RoundCoord(lat), cache.RoundCoord(lng))
	if err != nil {
		switch {
		case upstream.IsTimeout(err):
			writeError(w, http.StatusGatewayTimeout, "Climate API timeout")
		case upstream.StatusCode(err) > 0:
			writeError(w, http.StatusBadGateway, upstreamStatusMessage("Climate API error", err))
		default:
			s.logger.Error().Err(err).Str("cache_key", key).Msg("Climate proxy error")
			writeError(w, http.StatusInternalServerError, internalErrorMessage)
		}
		return
	}

	if err := s.cache.Set(ctx, key, data, s.climateTTL); err != nil {
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Failed to store climate response")
	} else {
		s.logger.Info().Str("cache_key", key).Dur("ttl", s.climateTTL).Msg("Climate cache miss, stored")
	}

	writeJSON(w, data)
}
