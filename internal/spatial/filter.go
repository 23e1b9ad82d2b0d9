package spatial

import (
	"github.com/paulmach/orb"

	"github.com/jengzang/risk-heatmap-go/internal/models"
)

// ZoneBound converts a zone into an orb bound (X = lon, Y = lat)
func ZoneBound(z models.Zone) orb.Bound {
	return orb.Bound{
		Min: orb.Point{z.LonMin, z.LatMin},
		Max: orb.Point{z.LonMax, z.LatMax},
	}
}

// InBound reports whether lat/lon lies inside b, edges included
func InBound(b orb.Bound, lat, lon float64) bool {
	return b.Contains(orb.Point{lon, lat})
}

// FilterByBound returns the items inside b, edges included.
// The result is a new slice; an empty result is not an error.
func FilterByBound[T Located](items []T, b orb.Bound) []T {
	out := make([]T, 0)
	for _, it := range items {
		lat, lon := it.Coordinates()
		if InBound(b, lat, lon) {
			out = append(out, it)
		}
	}
	return out
}
