// Package expiration implements the automatic hold expiration sweep.
//
// Reserved and bonus reservations are tentative: a sales hold that is never
// converted to a sale must not block inventory forever. The sweeper runs
// once at startup (before the server accepts queries) and then on a fixed
// interval, soft-deleting every active hold older than the holding period
// in one bulk mutation. Sold and blocked reservations are never touched.
//
// Sweep failures are logged and swallowed: the rows a failed sweep missed
// are still stale on the next tick, so at-least-once scheduling makes the
// job self-healing.
package expiration
