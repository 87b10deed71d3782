package idxwatch

import "sync"

// FetchResult is the per-symbol outcome of a batched fetch: either a quote,
// or the symbol was requested but absent from the provider's response.
type FetchResult struct {
	Quote *Quote
}

// Found wraps a quote into a FetchResult.
func Found(q Quote) FetchResult { return FetchResult{Quote: &q} }

// Absent is the result for a symbol the provider did not answer for.
func Absent() FetchResult { return FetchResult{} }

// IsAbsent reports whether the provider returned no quote for this symbol.
func (r FetchResult) IsAbsent() bool { return r.Quote == nil }

// Batch is the outcome of one refresh cycle, one result per requested symbol.
type Batch map[Symbol]FetchResult

// QuoteCache is the volatile, process-lifetime mapping from symbol to its
// most recent quote. A whole batch is applied under a single lock, so
// concurrent readers never observe a partially applied refresh. Entries are
// never evicted; the cache is bounded by the number of tracked symbols.
type QuoteCache struct {
	mu sync.RWMutex
	// A nil value records "no data": the symbol was requested at least once
	// but the provider never answered for it.
	entries map[Symbol]*Quote
}

// NewQuoteCache returns an empty cache.
func NewQuoteCache() *QuoteCache {
	return &QuoteCache{entries: make(map[Symbol]*Quote)}
}

// Update applies one refresh batch. A quote replaces the cached value for
// its symbol. An absent result keeps the prior value when one exists,
// enabling a last-known-quote display policy, and records "no data"
// otherwise. The composite index is the exception: it headlines every
// screen as if current, so when a response drops it the prior value is
// replaced with "no data" rather than shown stale.
func (c *QuoteCache) Update(batch Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for sym, res := range batch {
		if res.IsAbsent() {
			if _, ok := c.entries[sym]; !ok || sym == IndexSymbol {
				c.entries[sym] = nil
			}
			continue
		}
		q := *res.Quote
		c.entries[sym] = &q
	}
}

// Get returns the cached quote for sym, if any.
func (c *QuoteCache) Get(sym Symbol) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.entries[sym]
	if !ok || q == nil {
		return Quote{}, false
	}
	return *q, true
}

// Known reports whether sym has ever been part of a refresh, even when the
// provider recorded no data for it.
func (c *QuoteCache) Known(sym Symbol) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[sym]
	return ok
}

// Forget drops the entry for sym, so a later Known reports false.
func (c *QuoteCache) Forget(sym Symbol) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sym)
}

// Clear drops all entries.
func (c *QuoteCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Symbol]*Quote)
}

// Len returns the number of entries, counting "no data" records.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
