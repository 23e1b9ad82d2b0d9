package models

// Zone is a named administrative region with a fixed bounding box
type Zone struct {
	Name   string  `json:"-"`
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
}
