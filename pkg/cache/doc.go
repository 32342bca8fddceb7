// Package cache provides the shared response cache for the proxy
// handlers, backed by Valkey/Redis.
//
// Every proxied service derives its keys through this package so that
// logically distinct requests never collide:
//
//   - Overpass queries hash to overpass:<sha256[:16]>
//   - Climate lookups round coordinates to 2 decimals: climate:<lat>:<lng>
//   - Canopy tiles use the raw quadkey: canopy:<quadkey>
//
// Entries are written with a TTL and evicted only by expiry. A present,
// unexpired entry is always equivalent to a fresh upstream fetch for
// the same logical request, so concurrent misses that both fetch and
// both write are harmless (last writer wins).
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.OverpassKey(query)
//	data, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch upstream, then:
//		_ = manager.Set(ctx, key, data, 7*24*time.Hour)
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - solar_cache_hits_total - Cache hits
//   - solar_cache_misses_total - Cache misses
//   - solar_cache_written_bytes - Cumulative bytes written
//   - solar_cache_errors_total{operation} - Cache operation errors
package cache
