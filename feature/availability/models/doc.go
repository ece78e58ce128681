// Package models defines the persisted records the availability feature
// reads: inventory items, reservations, calendar windows and billing
// periods.
//
// The soft-deletion convention is deliberate: DeletedAt is a plain nullable
// timestamp, not gorm.DeletedAt, so queries state "deleted_at IS NULL"
// explicitly instead of relying on implicit scoping. The expiration sweeper
// depends on that convention being honored faithfully.
package models
