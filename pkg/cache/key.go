package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
)

// Key prefixes, one namespace per proxied service.
const (
	overpassPrefix = "overpass:"
	climatePrefix  = "climate:"
	canopyPrefix   = "canopy:"
)

// OverpassKey derives the cache key for an Overpass query.
// The key is a content hash, so byte-identical query bodies share a
// cache entry regardless of which client submitted them.
func OverpassKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return overpassPrefix + hex.EncodeToString(sum[:])[:16]
}

// RoundCoord rounds a coordinate to 2 decimal places (~1 km grid).
// Nearby lookups collapse onto the same climate cache entry; the same
// rounded value must be sent upstream so a cached response stays
// equivalent to a fresh fetch for its key.
func RoundCoord(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatCoord renders a rounded coordinate in its shortest decimal
// form (37.70 becomes "37.7"), keeping keys stable across callers.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ClimateKey derives the cache key for a climate lookup. Coordinates
// are rounded before derivation, so inputs differing only beyond the
// 2nd decimal place map to the same entry.
func ClimateKey(lat, lng float64) string {
	return fmt.Sprintf("%s%s:%s", climatePrefix, FormatCoord(RoundCoord(lat)), FormatCoord(RoundCoord(lng)))
}

// CanopyKey derives the cache key for a canopy tile quadkey.
func CanopyKey(quadkey string) string {
	return canopyPrefix + quadkey
}
