package spatial

import (
	"math"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Located is anything with a latitude/longitude position
type Located interface {
	Coordinates() (lat, lon float64)
}

// Coordinates implements Located
func (p Point) Coordinates() (float64, float64) {
	return p.Lat, p.Lon
}

// Centroid calculates the arithmetic centroid of a set of positions.
// ok is false for an empty input.
func Centroid[T Located](items []T) (c Point, ok bool) {
	if len(items) == 0 {
		return Point{}, false
	}

	var sumLat, sumLon float64
	for _, it := range items {
		lat, lon := it.Coordinates()
		sumLat += lat
		sumLon += lon
	}

	return Point{
		Lat: sumLat / float64(len(items)),
		Lon: sumLon / float64(len(items)),
	}, true
}

// SquaredDistance is the squared Euclidean distance in lat/lon degrees.
// Only suitable for ranking nearby candidates, not for metric distances.
func SquaredDistance(a, b Point) float64 {
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	return dLat*dLat + dLon*dLon
}

// Nearest returns the index of the item closest to target by squared
// Euclidean distance. Ties keep the earliest item. The input is not modified.
func Nearest[T Located](target Point, items []T) (int, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, it := range items {
		lat, lon := it.Coordinates()
		d := SquaredDistance(target, Point{Lat: lat, Lon: lon})
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}
