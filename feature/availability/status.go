package availability

import (
	"encoding/json"
	"fmt"

	"placement-manager/feature/availability/models"
)

// Status is the derived availability state of an inventory item for a given
// time scope. The declaration order is the precedence order: a reservation
// tag only displaces a lower-precedence one.
type Status int

const (
	StatusAvailable Status = iota
	StatusBlocked
	StatusReserved
	StatusSold
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusSold:
		return "sold"
	case StatusReserved:
		return "reserved"
	case StatusBlocked:
		return "blocked"
	default:
		return "available"
	}
}

// MarshalJSON encodes the status as its wire name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire name back into a Status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseStatus(name)
	if !ok {
		return fmt.Errorf("unknown status %q", name)
	}
	*s = parsed
	return nil
}

// ParseStatus maps a wire name back to a Status. The second return value is
// false for unknown names.
func ParseStatus(name string) (Status, bool) {
	switch name {
	case "sold":
		return StatusSold, true
	case "reserved":
		return StatusReserved, true
	case "blocked":
		return StatusBlocked, true
	case "available":
		return StatusAvailable, true
	default:
		return StatusAvailable, false
	}
}

// statusOf maps a raw reservation tag to its derived status. Bonus folds
// into Reserved here, at emission: the merge is a presentation rule, not a
// precedence rule.
func statusOf(tag string) Status {
	switch tag {
	case models.ReservationSold:
		return StatusSold
	case models.ReservationReserved, models.ReservationBonus:
		return StatusReserved
	case models.ReservationBlocked:
		return StatusBlocked
	default:
		return StatusAvailable
	}
}

// priorityOf ranks a raw reservation tag: sold outranks reserved and bonus,
// which outrank blocked. Unknown tags rank at zero and never claim an item.
func priorityOf(tag string) int {
	switch tag {
	case models.ReservationSold:
		return 3
	case models.ReservationReserved, models.ReservationBonus:
		return 2
	case models.ReservationBlocked:
		return 1
	default:
		return 0
	}
}

// ResolveStatuses derives one status per item from the reservations that
// overlap the requested window. A reservation displaces the running status
// only when its precedence is strictly higher, so among reservations of
// equal precedence the first one encountered wins — a defined tie-break, and
// harmless since equal-precedence tags emit the same status. Items with no
// active reservation resolve to available. Reservations for items outside
// the requested set are ignored.
func ResolveStatuses(itemIDs []int, reservations []models.Reservation) map[int]Status {
	resolved := make(map[int]Status, len(itemIDs))
	best := make(map[int]int, len(itemIDs))
	for _, id := range itemIDs {
		resolved[id] = StatusAvailable
	}

	for _, r := range reservations {
		if _, requested := resolved[r.InventoryItemID]; !requested {
			continue
		}
		p := priorityOf(r.Status)
		if p > best[r.InventoryItemID] {
			best[r.InventoryItemID] = p
			resolved[r.InventoryItemID] = statusOf(r.Status)
		}
	}

	return resolved
}
