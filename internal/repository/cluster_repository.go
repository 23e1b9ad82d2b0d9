package repository

import (
	"io"
	"sort"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
)

// ClusterProfiles maps a cluster label to its infraction distribution
type ClusterProfiles struct {
	byCluster map[int][]models.InfractionShare
}

// LoadClusterProfiles parses the cluster profile CSV (cluster, tipo_infraccion, porcentaje)
func LoadClusterProfiles(r io.Reader, source string) (*ClusterProfiles, error) {
	p := &ClusterProfiles{byCluster: make(map[int][]models.InfractionShare)}
	err := readCSV(r, source, []string{"cluster", "tipo_infraccion", "porcentaje"}, func(row csvRow) error {
		cluster, err := row.Int("cluster")
		if err != nil {
			return err
		}
		pct, err := row.Float("porcentaje")
		if err != nil {
			return err
		}
		p.byCluster[cluster] = append(p.byCluster[cluster], models.InfractionShare{
			Type:        row.String("tipo_infraccion"),
			Probability: pct,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, shares := range p.byCluster {
		sortShares(shares)
	}
	return p, nil
}

// NewClusterProfiles builds profiles from an in-memory map
func NewClusterProfiles(m map[int][]models.InfractionShare) *ClusterProfiles {
	p := &ClusterProfiles{byCluster: make(map[int][]models.InfractionShare, len(m))}
	for k, v := range m {
		shares := append([]models.InfractionShare(nil), v...)
		sortShares(shares)
		p.byCluster[k] = shares
	}
	return p
}

// sortShares orders by probability desc, then type asc
func sortShares(s []models.InfractionShare) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Probability != s[j].Probability {
			return s[i].Probability > s[j].Probability
		}
		return s[i].Type < s[j].Type
	})
}

// Top returns up to k shares of a cluster, highest first. Safe on a nil receiver.
func (p *ClusterProfiles) Top(cluster, k int) []models.InfractionShare {
	if p == nil {
		return nil
	}
	shares := p.byCluster[cluster]
	if k > len(shares) || k <= 0 {
		k = len(shares)
	}
	out := make([]models.InfractionShare, k)
	copy(out, shares[:k])
	return out
}

// Len returns the number of clusters with a profile
func (p *ClusterProfiles) Len() int {
	if p == nil {
		return 0
	}
	return len(p.byCluster)
}

// RiskCell is one row of the cell-to-cluster assignment table
type RiskCell struct {
	Lat       float64
	Lon       float64
	Cluster   int
	RiskLevel string
}

// Coordinates implements spatial.Located
func (c RiskCell) Coordinates() (float64, float64) {
	return c.Lat, c.Lon
}

// RiskCells is the cell → (cluster, risk level) table
type RiskCells struct {
	cells []RiskCell
	byKey map[models.GridKey]int
}

// LoadRiskCells parses the risk cell CSV (lat_grid, lon_grid, cluster, nivel_riesgo)
func LoadRiskCells(r io.Reader, source string) (*RiskCells, error) {
	var cells []RiskCell
	err := readCSV(r, source, []string{"lat_grid", "lon_grid", "cluster"}, func(row csvRow) error {
		lat, err := row.Float("lat_grid")
		if err != nil {
			return err
		}
		lon, err := row.Float("lon_grid")
		if err != nil {
			return err
		}
		cluster, err := row.Int("cluster")
		if err != nil {
			return err
		}
		cells = append(cells, RiskCell{Lat: lat, Lon: lon, Cluster: cluster, RiskLevel: row.String("nivel_riesgo")})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewRiskCells(cells), nil
}

// NewRiskCells indexes cells by grid key. The first row of a duplicated cell wins.
func NewRiskCells(cells []RiskCell) *RiskCells {
	t := &RiskCells{
		cells: append([]RiskCell(nil), cells...),
		byKey: make(map[models.GridKey]int, len(cells)),
	}
	for i, c := range t.cells {
		key := models.NewGridKey(c.Lat, c.Lon)
		if _, dup := t.byKey[key]; !dup {
			t.byKey[key] = i
		}
	}
	return t
}

// At returns the exact assignment of a grid cell
func (t *RiskCells) At(key models.GridKey) (RiskCell, bool) {
	if t == nil {
		return RiskCell{}, false
	}
	i, ok := t.byKey[key]
	if !ok {
		return RiskCell{}, false
	}
	return t.cells[i], true
}

// Nearest returns the assignment closest to p
func (t *RiskCells) Nearest(p spatial.Point) (RiskCell, bool) {
	if t == nil {
		return RiskCell{}, false
	}
	i, ok := spatial.Nearest(p, t.cells)
	if !ok {
		return RiskCell{}, false
	}
	return t.cells[i], true
}

// Len returns the number of rows
func (t *RiskCells) Len() int {
	if t == nil {
		return 0
	}
	return len(t.cells)
}
