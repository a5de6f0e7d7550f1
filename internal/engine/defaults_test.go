package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSnapshot(t *testing.T) {
	s := DefaultSnapshot(1)

	assert.True(t, s.IsFresh)
	assert.Equal(t, int64(1), s.Version)
	assert.Empty(t, s.Records)
	assert.InDelta(t, 10700, s.TotalEmissions, 1e-9)
	assert.InDelta(t, 1500, s.PotentialReduction, 1e-9)

	require.Len(t, s.Suppliers, 2)
	assert.Equal(t, SupplierSummary{Name: "Global Steel Co", Emissions: 5400, Contribution: 45, Region: "Asia", Color: ColorMaterials}, s.Suppliers[0])
	assert.Equal(t, "AluFab Ltd", s.Suppliers[1].Name)

	require.Len(t, s.Categories, 3)
	assert.InDelta(t, 7200, s.Categories[0].Value, 1e-9)
	assert.InDelta(t, 1000, s.Categories[2].Value, 1e-9)
	assert.Equal(t, []TrendPoint{{Month: "Jan", Emissions: 1100}, {Month: "Feb", Emissions: 1050}}, s.Trend)
}

func TestDefaultSnapshot_Independent(t *testing.T) {
	a := DefaultSnapshot(1)
	a.Suppliers[0].Name = "changed"

	b := DefaultSnapshot(2)
	assert.Equal(t, "Global Steel Co", b.Suppliers[0].Name)
}
