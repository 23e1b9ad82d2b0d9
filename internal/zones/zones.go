// Package zones holds the static province bounding boxes used to scope predictions.
package zones

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
)

// ecuador lists the provinces of Ecuador with approximate bounding boxes
var ecuador = []models.Zone{
	{Name: "Azuay", LatMin: -3.6, LatMax: -2.3, LonMin: -79.6, LonMax: -78.3},
	{Name: "Bolívar", LatMin: -2.2, LatMax: -1.3, LonMin: -79.3, LonMax: -78.5},
	{Name: "Cañar", LatMin: -3.2, LatMax: -2.2, LonMin: -79.5, LonMax: -78.7},
	{Name: "Carchi", LatMin: 0.5, LatMax: 1.2, LonMin: -78.8, LonMax: -77.6},
	{Name: "Chimborazo", LatMin: -2.3, LatMax: -1.2, LonMin: -79.1, LonMax: -78.4},
	{Name: "Cotopaxi", LatMin: -1.4, LatMax: -0.5, LonMin: -79.1, LonMax: -78.3},
	{Name: "El Oro", LatMin: -3.9, LatMax: -3.0, LonMin: -80.3, LonMax: -79.4},
	{Name: "Esmeraldas", LatMin: 0.0, LatMax: 1.3, LonMin: -80.1, LonMax: -78.5},
	{Name: "Guayas", LatMin: -2.6, LatMax: -1.5, LonMin: -80.3, LonMax: -79.5},
	{Name: "Imbabura", LatMin: 0.1, LatMax: 0.7, LonMin: -78.7, LonMax: -77.7},
	{Name: "Loja", LatMin: -4.9, LatMax: -3.4, LonMin: -80.4, LonMax: -78.8},
	{Name: "Los Ríos", LatMin: -1.8, LatMax: -0.7, LonMin: -80.2, LonMax: -79.1},
	{Name: "Manabí", LatMin: -1.8, LatMax: 0.4, LonMin: -80.9, LonMax: -79.0},
	{Name: "Morona Santiago", LatMin: -3.8, LatMax: -1.5, LonMin: -78.7, LonMax: -76.7},
	{Name: "Napo", LatMin: -1.2, LatMax: 0.1, LonMin: -78.3, LonMax: -76.4},
	{Name: "Orellana", LatMin: -1.3, LatMax: 0.0, LonMin: -77.6, LonMax: -75.2},
	{Name: "Pastaza", LatMin: -2.6, LatMax: -0.8, LonMin: -78.3, LonMax: -75.5},
	{Name: "Pichincha", LatMin: -0.7, LatMax: 0.4, LonMin: -79.3, LonMax: -78.0},
	{Name: "Santa Elena", LatMin: -2.4, LatMax: -1.8, LonMin: -81.1, LonMax: -80.2},
	{Name: "Santo Domingo de los Tsáchilas", LatMin: -1.2, LatMax: -0.1, LonMin: -79.7, LonMax: -79.0},
	{Name: "Sucumbíos", LatMin: -1.0, LatMax: 0.7, LonMin: -77.5, LonMax: -75.1},
	{Name: "Tungurahua", LatMin: -1.6, LatMax: -0.9, LonMin: -79.0, LonMax: -78.2},
	{Name: "Zamora Chinchipe", LatMin: -5.1, LatMax: -3.4, LonMin: -79.4, LonMax: -77.3},
}

// Registry is an immutable name -> zone lookup
type Registry struct {
	zones map[string]models.Zone
	names []string
}

// NewRegistry builds a registry from the given zones. Later duplicates win.
func NewRegistry(zs []models.Zone) *Registry {
	r := &Registry{zones: make(map[string]models.Zone, len(zs))}
	for _, z := range zs {
		r.zones[z.Name] = z
	}
	r.names = make([]string, 0, len(r.zones))
	for name := range r.zones {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Default returns the registry of Ecuadorian provinces
func Default() *Registry {
	return NewRegistry(ecuador)
}

// Lookup finds a zone by exact name
func (r *Registry) Lookup(name string) (models.Zone, bool) {
	z, ok := r.zones[name]
	return z, ok
}

// Bound returns the orb bound of a zone
func (r *Registry) Bound(name string) (orb.Bound, bool) {
	z, ok := r.zones[name]
	if !ok {
		return orb.Bound{}, false
	}
	return spatial.ZoneBound(z), true
}

// Names returns the zone names sorted by byte order
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// All returns every zone keyed by name. The map is a copy.
func (r *Registry) All() map[string]models.Zone {
	out := make(map[string]models.Zone, len(r.zones))
	for k, v := range r.zones {
		out[k] = v
	}
	return out
}
