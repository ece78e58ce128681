package availability

import (
	"testing"

	"placement-manager/feature/availability/models"

	"github.com/stretchr/testify/assert"
)

func item(id int, plaza, municipality string) models.InventoryItem {
	return models.InventoryItem{
		ID:           id,
		Plaza:        plaza,
		Municipality: municipality,
	}
}

func TestAggregate(t *testing.T) {
	items := []models.InventoryItem{
		item(1, "Norte", "Monterrey"),
		item(2, "Norte", "Monterrey"),
		item(3, "Sur", "Guadalajara"),
		item(4, "Sur", ""),
		item(5, "Centro", "CDMX"),
	}

	t.Run("Counts Sum To Items With Values", func(t *testing.T) {
		groups := Aggregate(items, nil, DimensionMunicipality, nil)

		total := 0
		for _, g := range groups {
			total += g.Count
		}
		// Item 4 has no municipality and is excluded, not zero-counted.
		assert.Equal(t, 4, total)
	})

	t.Run("Descending Count With Alphabetical Tie Break", func(t *testing.T) {
		groups := Aggregate(items, nil, DimensionPlaza, nil)

		assert.Equal(t, []GroupCount{
			{Label: "Norte", Count: 2},
			{Label: "Sur", Count: 2},
			{Label: "Centro", Count: 1},
		}, groups)
	})

	t.Run("Status Filter Narrows Counts", func(t *testing.T) {
		resolved := map[int]Status{1: StatusSold, 2: StatusReserved}
		sold := StatusSold

		groups := Aggregate(items, resolved, DimensionPlaza, &sold)

		assert.Equal(t, []GroupCount{{Label: "Norte", Count: 1}}, groups)
	})

	t.Run("Digital Dimension Labels", func(t *testing.T) {
		mixed := []models.InventoryItem{
			{ID: 1, Digital: true},
			{ID: 2, Digital: false},
			{ID: 3, Digital: false},
		}

		groups := Aggregate(mixed, nil, DimensionDigital, nil)

		assert.Equal(t, []GroupCount{
			{Label: "traditional", Count: 2},
			{Label: "digital", Count: 1},
		}, groups)
	})
}

func TestKPIs(t *testing.T) {
	items := []models.InventoryItem{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5},
	}
	resolved := map[int]Status{
		1: StatusSold,
		2: StatusReserved,
		3: StatusBlocked,
		4: StatusAvailable,
		// Item 5 absent from the map: counts as available.
	}

	s := KPIs(items, resolved)

	assert.Equal(t, Summary{Total: 5, Available: 2, Reserved: 1, Sold: 1, Blocked: 1}, s)
}

func TestSummarizeByPlaza(t *testing.T) {
	lat, lng := 25.67, -100.31
	lat2, lng2 := 20.67, -103.35

	items := []models.InventoryItem{
		{ID: 1, Plaza: "Norte"},
		{ID: 2, Plaza: "Norte", Latitude: &lat, Longitude: &lng},
		{ID: 3, Plaza: "Norte", Latitude: &lat2, Longitude: &lng2},
		{ID: 4, Plaza: "Sur"},
		{ID: 5, Plaza: ""},
	}

	summary := SummarizeByPlaza(items)

	assert.Len(t, summary, 2, "unnamed plazas are skipped")
	assert.Equal(t, "Norte", summary[0].Plaza)
	assert.Equal(t, 3, summary[0].Count)
	// First non-null coordinate wins as the representative pair.
	assert.Equal(t, &lat, summary[0].Latitude)
	assert.Equal(t, &lng, summary[0].Longitude)

	assert.Equal(t, "Sur", summary[1].Plaza)
	assert.Nil(t, summary[1].Latitude)
}
