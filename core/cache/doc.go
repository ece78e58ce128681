// Package cache provides an in-memory TTL cache.
//
// It memoizes expensive aggregation queries so repeated dashboard and map
// requests do not recompute the same breakdowns. The cache is never a source
// of truth: every entry is a pure function of the backing store, bounded in
// staleness by its TTL.
//
// # Design
//
//   - Lazy expiry: Get treats an expired entry as absent regardless of the
//     background cleanup.
//   - No negative caching: a failing producer in GetOrCompute stores nothing.
//   - Explicit lifecycle: the cache is constructed once at startup, injected
//     into the features that need it, and stopped on shutdown so its cleanup
//     goroutine never outlives the process.
package cache
