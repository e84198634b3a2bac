// Package mirror downloads the package metadata database from a remote
// mirror into the local database directory.
//
// A mirror publishes an index.toml listing every file of the database with
// its SHA-256 digest:
//
//	[[files]]
//	path = "main/signal-1.0.11.toml"
//	sha256 = "5f1c..."
//
// [Syncer.Sync] fetches the index, then each listed file whose local copy is
// missing or stale. Every download is verified against its digest before it
// is written, and verified bytes are kept in a [cache.Cache] so a later sync
// (or another host sharing a Redis cache) does not download them again.
//
// Downloads go through a [Fetcher] that caches DNS lookups, retries
// transient failures with exponential backoff and stops calling a mirror
// that keeps failing through a per-host circuit breaker.
package mirror
