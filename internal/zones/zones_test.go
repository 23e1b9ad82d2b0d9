package zones

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/risk-heatmap-go/internal/models"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	names := r.Names()
	assert.Len(t, names, 23)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, "Azuay", names[0])
	assert.Equal(t, "Zamora Chinchipe", names[len(names)-1])

	z, ok := r.Lookup("Guayas")
	require.True(t, ok)
	assert.Equal(t, -2.6, z.LatMin)
	assert.Equal(t, -79.5, z.LonMax)
}

func TestLookupIsExact(t *testing.T) {
	r := Default()

	_, ok := r.Lookup("Atlantis")
	assert.False(t, ok)
	_, ok = r.Lookup("guayas")
	assert.False(t, ok)
	_, ok = r.Lookup("Los Ríos")
	assert.True(t, ok)
}

func TestBound(t *testing.T) {
	r := NewRegistry([]models.Zone{{Name: "A", LatMin: 1, LatMax: 2, LonMin: 3, LonMax: 4}})

	b, ok := r.Bound("A")
	require.True(t, ok)
	assert.Equal(t, 3.0, b.Min.X())
	assert.Equal(t, 1.0, b.Min.Y())
	assert.Equal(t, 4.0, b.Max.X())
	assert.Equal(t, 2.0, b.Max.Y())
}

func TestAllReturnsCopy(t *testing.T) {
	r := Default()
	all := r.All()
	delete(all, "Guayas")

	_, ok := r.Lookup("Guayas")
	assert.True(t, ok)
}
