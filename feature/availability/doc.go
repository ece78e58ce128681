// Package availability implements the temporal status reconciliation core.
//
// A single inventory item can carry several overlapping reservations for a
// billing window. This package derives one authoritative status per item
// from those records, aggregates the derived statuses into distribution
// breakdowns for dashboards and maps, and memoizes the expensive
// aggregations behind a TTL cache.
//
// # Status Resolution
//
// An item's status is a deterministic function of its active, window-
// overlapping reservations, under a fixed precedence: sold beats reserved
// and bonus, which beat blocked. Bonus reservations surface as "reserved";
// items without any active reservation are "available". The cache only
// memoizes this function, it can never change its value.
//
// # Components
//
//   - Repository: the data access boundary (GORM-backed in production).
//   - ResolveStatuses / Aggregate / KPIs / SummarizeByPlaza: pure passes.
//   - Service: orchestrates fetch → resolve → aggregate → cache.
//   - Handler: exposes the HTTP endpoints.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /availability : KPIs and per-dimension breakdowns
//   - GET /availability/detail : paginated items with statuses, plaza
//     summary and map coordinates
//   - GET /availability/options : distinct filter values for dropdowns
//   - GET /availability/cache/stats : cache introspection
//   - DELETE /availability/cache : force recomputation
package availability
