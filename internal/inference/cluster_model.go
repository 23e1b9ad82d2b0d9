package inference

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jengzang/risk-heatmap-go/internal/spatial"
)

// Noise is the label DBSCAN gives to points outside every cluster
const Noise = -1

type corePoint struct {
	spatial.Point
	Label int
}

// ClusterModel answers "which known cluster is this location part of"
// from the core samples of a fitted DBSCAN model.
type ClusterModel struct {
	EpsKm    float64
	cores    []corePoint
	profiles map[int]map[string]any
}

// ClusterMatch is the nearest core sample within eps
type ClusterMatch struct {
	Label      int
	DistanceKm float64
	Profile    map[string]any
}

type clusterModelJSON struct {
	EpsKm      float64      `json:"eps_km"`
	CorePoints [][3]float64 `json:"core_points"`
}

// LoadClusterModelFiles reads the model and profile files
func LoadClusterModelFiles(modelPath, profilesPath string) (*ClusterModel, error) {
	mf, err := os.Open(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cluster model: %w", err)
	}
	defer mf.Close()

	var pr io.Reader
	if profilesPath != "" {
		pf, err := os.Open(profilesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cluster profiles: %w", err)
		}
		defer pf.Close()
		pr = pf
	}
	return LoadClusterModel(mf, pr)
}

// LoadClusterModel decodes the core samples and, when profiles is not nil,
// the label → profile object map.
func LoadClusterModel(model io.Reader, profiles io.Reader) (*ClusterModel, error) {
	var raw clusterModelJSON
	if err := json.NewDecoder(model).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode cluster model: %w", err)
	}
	if raw.EpsKm <= 0 {
		return nil, fmt.Errorf("cluster model: eps_km must be positive, got %v", raw.EpsKm)
	}

	m := &ClusterModel{EpsKm: raw.EpsKm, profiles: make(map[int]map[string]any)}
	for _, c := range raw.CorePoints {
		m.cores = append(m.cores, corePoint{Point: spatial.Point{Lat: c[0], Lon: c[1]}, Label: int(c[2])})
	}

	if profiles != nil {
		var byLabel map[string]map[string]any
		if err := json.NewDecoder(profiles).Decode(&byLabel); err != nil {
			return nil, fmt.Errorf("failed to decode cluster profiles: %w", err)
		}
		for k, v := range byLabel {
			label, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("cluster profiles: invalid label %q", k)
			}
			m.profiles[label] = v
		}
	}
	return m, nil
}

// Match finds the closest core sample by great-circle distance.
// ok is false when nothing lies within eps or the closest sample is noise.
func (m *ClusterModel) Match(p spatial.Point) (ClusterMatch, bool) {
	best := -1
	bestKm := 0.0
	for i, c := range m.cores {
		d := spatial.HaversineKm(p, c.Point)
		if best < 0 || d < bestKm {
			best, bestKm = i, d
		}
	}
	if best < 0 || bestKm > m.EpsKm || m.cores[best].Label == Noise {
		return ClusterMatch{}, false
	}

	label := m.cores[best].Label
	profile := make(map[string]any, len(m.profiles[label])+2)
	for k, v := range m.profiles[label] {
		profile[k] = v
	}
	return ClusterMatch{Label: label, DistanceKm: bestKm, Profile: profile}, true
}

// Len returns the number of core samples
func (m *ClusterModel) Len() int {
	return len(m.cores)
}
