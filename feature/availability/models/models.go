package models

import "time"

// Raw reservation status tags as stored by the booking workflow.
const (
	ReservationSold     = "sold"
	ReservationReserved = "reserved"
	ReservationBonus    = "bonus"
	ReservationBlocked  = "blocked"
)

// ValidReservationStatus reports whether tag is one of the known raw tags.
func ValidReservationStatus(tag string) bool {
	switch tag {
	case ReservationSold, ReservationReserved, ReservationBonus, ReservationBlocked:
		return true
	default:
		return false
	}
}

// InventoryItem is a physical advertising placement. The catalog that owns
// these records lives outside this service; items are read-only input here.
type InventoryItem struct {
	ID            int      `gorm:"primaryKey" json:"id"`
	Code          string   `gorm:"size:64;uniqueIndex" json:"code"`
	FurnitureType string   `gorm:"size:64;index" json:"furniture_type"`
	Digital       bool     `json:"digital"`
	Municipality  string   `gorm:"size:128" json:"municipality"`
	State         string   `gorm:"size:128" json:"state"`
	Plaza         string   `gorm:"size:128;index" json:"plaza"`
	Tier          string   `gorm:"size:16" json:"tier"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// Reservation ties an inventory item to a client for a calendar window.
// Reservations are created by the booking workflow; this service only ever
// sets DeletedAt when a tentative hold ages out.
type Reservation struct {
	ID               int       `gorm:"primaryKey" json:"id"`
	InventoryItemID  int       `gorm:"index" json:"inventory_item_id"`
	ClientID         int       `json:"client_id"`
	Status           string    `gorm:"size:16" json:"status"`
	ReservedAt       time.Time `json:"reserved_at"`
	CalendarWindowID *int      `json:"calendar_window_id"`
	// DeletedAt is the soft-deletion marker: null means active.
	DeletedAt *time.Time `gorm:"index" json:"deleted_at"`
}

// CalendarWindow is a concrete dated span (e.g. a two-week billing period)
// that reservations attach to.
type CalendarWindow struct {
	ID        int        `gorm:"primaryKey" json:"id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at"`
}

// BillingPeriod names a calendar window by cycle number and year, so sales
// tools can reference "cycle 5 of 2026" instead of raw dates.
type BillingPeriod struct {
	ID               int `gorm:"primaryKey" json:"id"`
	Cycle            int `json:"cycle"`
	Year             int `json:"year"`
	CalendarWindowID int `json:"calendar_window_id"`
}
