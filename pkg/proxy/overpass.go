package proxy

import (
	"encoding/json"
	"net/http"

	"github.com/solar-sim/solar-sim-api/pkg/cache"
	"github.com/solar-sim/solar-sim-api/pkg/upstream"
)

type overpassRequest struct {
	Query string `json:"query"`
}

// handleOverpass proxies Overpass QL queries, cached by content hash.
func (s *Server) handleOverpass(w http.ResponseWriter, r *http.Request) {
	var body overpassRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Query == "" {
		writeError(w, http.StatusBadRequest, "Missing 'query' parameter")
		return
	}

	ctx := r.Context()
	key := cache.OverpassKey(body.Query)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		s.logger.Debug().Str("cache_key", key).Msg("Overpass cache hit")
		writeJSON(w, cached)
		return
	}
	if err != cache.ErrCacheMiss {
		// Degrade to a plain pass-through when the cache is down
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Overpass cache read failed")
	}

	data, err := s.overpass.Query(ctx, body.Query)
	if err != nil {
		switch {
		case upstream.IsTimeout(err):
			writeError(w, http.StatusGatewayTimeout, "Overpass API timeout")
		case upstream.StatusCode(err) > 0:
			writeError(w, http.StatusBadGateway, upstreamStatusMessage("Overpass API error", err))
		default:
			s.logger.Error().Err(err).Str("cache_key", key).Msg("Overpass proxy error")
			writeError(w, http.StatusInternalServerError, internalErrorMessage)
		}
		return
	}

	if err := s.cache.Set(ctx, key, data, s.overpassTTL); err != nil {
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Failed to store Overpass response")
	} else {
		s.logger.Info().Str("cache_key", key).Dur("ttl", s.overpassTTL).Msg("Overpass cache miss, stored")
	}

	writeJSON(w, data)
}
