package rules

import (
	"fmt"
	"sync"

	"pagegate/internal/gate/common/clock"
	"pagegate/internal/gate/common/log"
	"pagegate/internal/gate/domain"
)

// repository implements Repository by composing a Store, a MatchCache, and a
// TargetExtractor. Reads run cache -> snapshot evaluation; updates rewrite
// the store, swap the in-memory snapshots, and purge the cache.
type repository struct {
	mu        sync.RWMutex
	updateMu  sync.Mutex // serializes Update end to end
	store     Store
	cache     MatchCache
	extractor *domain.TargetExtractor
	clock     clock.Clock
	logger    log.Logger
	blocked   domain.RuleSet
	allowed   domain.RuleSet
	gen       uint64 // bumped on every snapshot swap; guards stale cache inserts
}

// NewRepository constructs a Repository and loads the persisted rule lists.
func NewRepository(store Store, cache MatchCache, extractor *domain.TargetExtractor, clk clock.Clock, logger log.Logger) (Repository, error) {
	blocked, allowed, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading rule lists: %w", err)
	}
	r := &repository{
		store:     store,
		cache:     cache,
		extractor: extractor,
		clock:     clk,
		logger:    logger,
		blocked:   domain.ParseRuleSet(blocked),
		allowed:   domain.ParseRuleSet(allowed),
	}
	logger.Info(map[string]any{
		"blocked": r.blocked.Len(),
		"allowed": r.allowed.Len(),
	}, "rule lists loaded")
	return r, nil
}

// Match returns the whitelist/block match outcome for a URL.
// Whitelist evaluation runs first; its result is recorded regardless of any
// block-rule match so the combiner can give it absolute precedence.
func (r *repository) Match(u domain.NormalizedURL) domain.MatchResult {
	key := u.Key()

	r.mu.RLock()
	if m, ok := r.cache.Get(key); ok {
		r.mu.RUnlock()
		return m
	}
	blocked, allowed, gen := r.blocked, r.allowed, r.gen
	r.mu.RUnlock()

	m := domain.MatchResult{Target: r.extractor.Extract(u)}
	if rule, ok := allowed.FirstMatch(u); ok {
		m.WhitelistRule = rule.Raw
	}
	if rule, ok := blocked.FirstMatch(u); ok {
		m.BlockRule = rule.Raw
	}

	r.putIfCurrent(key, m, gen)
	return m
}

// putIfCurrent inserts a computed match result unless the snapshots it was
// evaluated against have been replaced in the meantime. Without the generation
// check an Update racing the unlocked evaluation above could purge the cache
// and then have a result from the old rule sets re-inserted after it, where it
// would keep answering until the next update.
func (r *repository) putIfCurrent(key string, m domain.MatchResult, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == gen {
		r.cache.Put(key, m)
	}
}

// Snapshot returns the current immutable rule sets.
func (r *repository) Snapshot() (domain.RuleSet, domain.RuleSet) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.blocked, r.allowed
}

// Update persists new rule lists, swaps the snapshots, and purges the cache.
// Raw strings are cleaned and de-duplicated; unusable entries are dropped.
// Concurrent updates are serialized, so each one gets its own version.
func (r *repository) Update(blocked, allowed []string) error {
	r.updateMu.Lock()
	defer r.updateMu.Unlock()

	nextBlocked := domain.ParseRuleSet(blocked)
	nextAllowed := domain.ParseRuleSet(allowed)

	now := r.clock.Now()
	version := r.store.Stats().Version + 1
	if err := r.store.Replace(nextBlocked.Strings(), nextAllowed.Strings(), version, now.Unix()); err != nil {
		return fmt.Errorf("replacing rule lists: %w", err)
	}

	r.mu.Lock()
	r.blocked = nextBlocked
	r.allowed = nextAllowed
	r.gen++
	r.cache.Purge()
	r.mu.Unlock()

	r.logger.Info(map[string]any{
		"blocked": nextBlocked.Len(),
		"allowed": nextAllowed.Len(),
		"version": version,
	}, "rule lists updated")
	return nil
}

// RepoStats returns cache counters plus store metadata.
func (r *repository) RepoStats() RepoStats {
	hits, misses, evictions := r.cache.Stats()
	return RepoStats{
		Hits:      hits,
		Misses:    misses,
		Evictions: evictions,
		Store:     r.store.Stats(),
	}
}

// Close releases the underlying store.
func (r *repository) Close() error { return r.store.Close() }
