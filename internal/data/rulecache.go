package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"consumption-sim/internal/model"
)

// ruleEntry is one cached solved rule.
type ruleEntry struct {
	rule      *model.Rule
	expiresAt time.Time
}

// RuleCache is an in-memory TTL cache of solved consumption rules keyed by
// the full parameter set (belief persistence included). Solving is the
// expensive step of an experiment; sweeps that revisit a (params, belief)
// pair skip it entirely.
//
// All methods are nil-safe so callers can treat "no cache" as a nil pointer.
type RuleCache struct {
	mu    sync.RWMutex
	store map[string]*ruleEntry
	ttl   time.Duration
}

// NewRuleCache creates a cache whose entries expire after ttl and starts a
// background sweep of expired entries.
func NewRuleCache(ttl time.Duration) *RuleCache {
	c := &RuleCache{
		store: make(map[string]*ruleEntry),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

// Get retrieves a cached rule if present and not expired.
func (c *RuleCache) Get(key string) (*model.Rule, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.rule, true
}

// Set stores a solved rule.
func (c *RuleCache) Set(key string, rule *model.Rule) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &ruleEntry{
		rule:      rule,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *RuleCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*ruleEntry)
}

// Len reports the number of stored entries, expired or not.
func (c *RuleCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// cleanup periodically removes expired entries.
func (c *RuleCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// RuleKey derives a deterministic cache key from a parameter set. Params is
// a flat value type, so its printed form identifies the solve completely.
func RuleKey(p model.Params) string {
	keyStr := fmt.Sprintf("%+v", p)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
