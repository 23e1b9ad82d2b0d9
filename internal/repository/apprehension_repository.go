package repository

import (
	"io"

	"github.com/paulmach/orb"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
)

// Apprehension is one recorded apprehension snapped to its grid cell
type Apprehension struct {
	Lat  float64
	Lon  float64
	Type string
}

// Coordinates implements spatial.Located
func (a Apprehension) Coordinates() (float64, float64) {
	return a.Lat, a.Lon
}

// Key returns the grid cell of the record
func (a Apprehension) Key() models.GridKey {
	return models.NewGridKey(a.Lat, a.Lon)
}

// Apprehensions holds the apprehension records
type Apprehensions struct {
	records []Apprehension
}

// LoadApprehensions parses the apprehension CSV. Coordinates come from
// lat_grid/lon_grid when present, otherwise latitud/longitud quantized to the grid.
func LoadApprehensions(r io.Reader, source string) (*Apprehensions, error) {
	a := &Apprehensions{}
	err := readCSV(r, source, []string{"tipo_infraccion"}, func(row csvRow) error {
		latCol, lonCol := "lat_grid", "lon_grid"
		if !row.has(latCol) || !row.has(lonCol) {
			latCol, lonCol = "latitud", "longitud"
		}
		lat, err := row.Float(latCol)
		if err != nil {
			return err
		}
		lon, err := row.Float(lonCol)
		if err != nil {
			return err
		}
		key := models.NewGridKey(lat, lon)
		a.records = append(a.records, Apprehension{Lat: key.Lat(), Lon: key.Lon(), Type: row.String("tipo_infraccion")})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// NewApprehensions wraps in-memory records, snapping them to the grid
func NewApprehensions(records []Apprehension) *Apprehensions {
	a := &Apprehensions{records: make([]Apprehension, len(records))}
	for i, r := range records {
		key := models.NewGridKey(r.Lat, r.Lon)
		a.records[i] = Apprehension{Lat: key.Lat(), Lon: key.Lon(), Type: r.Type}
	}
	return a
}

// Within returns the records inside b
func (a *Apprehensions) Within(b orb.Bound) []Apprehension {
	if a == nil {
		return nil
	}
	return spatial.FilterByBound(a.records, b)
}

// Len returns the number of records
func (a *Apprehensions) Len() int {
	if a == nil {
		return 0
	}
	return len(a.records)
}
