package rules

import "pagegate/internal/gate/domain"

// MatchCache caches per-URL match results with basic metrics. Entries are
// time-independent, so the cache is valid until the rule lists change and is
// purged wholesale on every update.
type MatchCache interface {
	Get(key string) (domain.MatchResult, bool)
	Put(key string, m domain.MatchResult)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

// StoreStats captures counts and metadata for the persistent store.
type StoreStats struct {
	BlockCount  uint64
	AllowCount  uint64
	Version     uint64
	UpdatedUnix int64 // seconds since epoch
}

// Store abstracts the persistent rule lists.
// Load returns both lists; Replace swaps them atomically.
type Store interface {
	Load() (blocked, allowed []string, err error)
	Replace(blocked, allowed []string, version uint64, updatedUnix int64) error
	Stats() StoreStats
	Close() error
}

// RepoStats exposes repository-level counters and underlying store stats.
type RepoStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Store     StoreStats
}

// Repository owns the block and whitelist rule snapshots and answers the
// time-independent half of an evaluation. Match never fails; on internal
// errors it degrades to a no-match result (fail open).
type Repository interface {
	Match(u domain.NormalizedURL) domain.MatchResult
	Snapshot() (blocked, allowed domain.RuleSet)
	Update(blocked, allowed []string) error
	RepoStats() RepoStats
	Close() error
}
