package availability

import (
	"sort"

	"placement-manager/feature/availability/models"
)

// Dimension is a categorical attribute items can be grouped by.
type Dimension string

const (
	DimensionType         Dimension = "furniture_type"
	DimensionDigital      Dimension = "digital"
	DimensionMunicipality Dimension = "municipality"
	DimensionState        Dimension = "state"
	DimensionPlaza        Dimension = "plaza"
	DimensionTier         Dimension = "tier"
)

// Dimensions lists every aggregatable dimension in report order.
var Dimensions = []Dimension{
	DimensionType,
	DimensionDigital,
	DimensionMunicipality,
	DimensionState,
	DimensionPlaza,
	DimensionTier,
}

// dimensionValue extracts an item's label for the given dimension.
// An empty label means the item carries no value for that dimension.
func dimensionValue(item models.InventoryItem, dim Dimension) string {
	switch dim {
	case DimensionType:
		return item.FurnitureType
	case DimensionDigital:
		if item.Digital {
			return "digital"
		}
		return "traditional"
	case DimensionMunicipality:
		return item.Municipality
	case DimensionState:
		return item.State
	case DimensionPlaza:
		return item.Plaza
	case DimensionTier:
		return item.Tier
	default:
		return ""
	}
}

// GroupCount is one labeled bucket in a breakdown.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary holds the headline counters over one resolved item set.
type Summary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Sold      int `json:"sold"`
	Blocked   int `json:"blocked"`
}

// PlazaSummary is a per-plaza count with one representative coordinate pair
// for map rendering.
type PlazaSummary struct {
	Plaza     string   `json:"plaza"`
	Count     int      `json:"count"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Aggregate counts items per value of one dimension. When statusFilter is
// non-nil, only items whose resolved status matches are counted. Items with
// an empty value for the dimension are excluded, not zero-counted. Buckets
// come back ordered by descending count; equal counts order alphabetically
// by label so the output is deterministic.
func Aggregate(items []models.InventoryItem, resolved map[int]Status, dim Dimension, statusFilter *Status) []GroupCount {
	counts := make(map[string]int)
	for _, item := range items {
		if statusFilter != nil && resolved[item.ID] != *statusFilter {
			continue
		}
		label := dimensionValue(item, dim)
		if label == "" {
			continue
		}
		counts[label]++
	}

	out := make([]GroupCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, GroupCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// KPIs computes the headline counters over the full item set. Items absent
// from the resolved map count as available.
func KPIs(items []models.InventoryItem, resolved map[int]Status) Summary {
	s := Summary{Total: len(items)}
	for _, item := range items {
		switch resolved[item.ID] {
		case StatusSold:
			s.Sold++
		case StatusReserved:
			s.Reserved++
		case StatusBlocked:
			s.Blocked++
		default:
			s.Available++
		}
	}
	return s
}

// SummarizeByPlaza groups items by plaza, capturing the first non-null
// coordinate pair seen per plaza. Plazas without a name are skipped.
// Ordering matches Aggregate: count descending, then label.
func SummarizeByPlaza(items []models.InventoryItem) []PlazaSummary {
	byPlaza := make(map[string]*PlazaSummary)
	for _, item := range items {
		if item.Plaza == "" {
			continue
		}
		s, ok := byPlaza[item.Plaza]
		if !ok {
			s = &PlazaSummary{Plaza: item.Plaza}
			byPlaza[item.Plaza] = s
		}
		s.Count++
		if s.Latitude == nil && item.Latitude != nil && item.Longitude != nil {
			s.Latitude = item.Latitude
			s.Longitude = item.Longitude
		}
	}

	out := make([]PlazaSummary, 0, len(byPlaza))
	for _, s := range byPlaza {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Plaza < out[j].Plaza
	})
	return out
}
