package proxy

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solar-sim/solar-sim-api/pkg/cache"
	"github.com/solar-sim/solar-sim-api/pkg/tilestore"
	"github.com/solar-sim/solar-sim-api/pkg/upstream"
)

// Tiles at or above this size are served but never cached, to bound
// cache memory (tiles run around 20 MB).
const maxCacheableTileBytes = 25 << 20

const tiffContentType = "image/tiff"

// handleCanopy serves canopy height GeoTIFF tiles through three tiers:
// local disk (authoritative), response cache, upstream tile origin.
func (s *Server) handleCanopy(w http.ResponseWriter, r *http.Request) {
	quadkey := chi.URLParam(r, "quadkey")
	if !validQuadkey(quadkey) {
		writeError(w, http.StatusBadRequest, "Invalid quadkey format")
		return
	}

	// Tier 1: local tile store
	if f, size, err := s.tiles.Open(quadkey); err == nil {
		defer f.Close()
		s.logger.Debug().Str("quadkey", quadkey).Msg("Canopy tile from disk")
		w.Header().Set("Content-Type", tiffContentType)
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		io.Copy(w, f)
		return
	} else if err != tilestore.ErrTileNotFound {
		s.logger.Warn().Err(err).Str("quadkey", quadkey).Msg("Tile store read failed")
	}

	ctx := r.Context()
	key := cache.CanopyKey(quadkey)

	// Tier 2: response cache
	if cached, err := s.cache.Get(ctx, key); err == nil {
		s.logger.Debug().Str("quadkey", quadkey).Msg("Canopy tile from cache")
		writeTile(w, cached)
		return
	} else if err != cache.ErrCacheMiss {
		s.logger.Warn().Err(err).Str("quadkey", quadkey).Msg("Canopy cache read failed")
	}

	// Tier 3: upstream tile origin
	tile, err := s.canopy.FetchTile(ctx, quadkey)
	if err != nil {
		switch {
		case upstream.StatusCode(err) == http.StatusNotFound:
			writeError(w, http.StatusNotFound, "Tile not found")
		case upstream.StatusCode(err) > 0:
			writeError(w, http.StatusBadGateway, upstreamStatusMessage("Tile fetch error", err))
		default:
			s.logger.Error().Err(err).Str("quadkey", quadkey).Msg("Canopy tile fetch error")
			writeError(w, http.StatusInternalServerError, internalErrorMessage)
		}
		return
	}

	if len(tile) < maxCacheableTileBytes {
		if err := s.cache.Set(ctx, key, tile, s.canopyTTL); err != nil {
			s.logger.Warn().Err(err).Str("quadkey", quadkey).Msg("Failed to cache canopy tile")
		} else {
			s.logger.Info().Str("quadkey", quadkey).Int("bytes", len(tile)).Msg("Canopy tile cached")
		}
	} else {
		s.logger.Debug().Str("quadkey", quadkey).Int("bytes", len(tile)).Msg("Canopy tile too large to cache")
	}

	writeTile(w, tile)
}

// validQuadkey reports whether quadkey is a non-empty base-4 string.
func validQuadkey(quadkey string) bool {
	if quadkey == "" {
		return false
	}
	for _, c := range quadkey {
		if c < '0' || c > '3' {
			return false
		}
	}
	return true
}

// writeTile serves tile bytes as TIFF imagery regardless of source tier.
func writeTile(w http.ResponseWriter, tile []byte) {
	w.Header().Set("Content-Type", tiffContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(tile)))
	w.WriteHeader(http.StatusOK)
	w.Write(tile)
}
