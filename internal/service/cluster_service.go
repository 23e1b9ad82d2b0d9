package service

import (
	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/repository"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
)

// DefaultProfileSize is the number of infraction types reported per zone
const DefaultProfileSize = 5

// ClusterService resolves zones and cells to risk clusters
type ClusterService struct {
	snap *repository.Snapshot
}

// NewClusterService creates a new cluster service
func NewClusterService(snap *repository.Snapshot) *ClusterService {
	return &ClusterService{snap: snap}
}

// ZoneCluster assigns a zone to the risk cell nearest to its centroid.
// ok is false when the table is not loaded or cells is empty.
func (s *ClusterService) ZoneCluster(cells []models.ScoredCell) (repository.RiskCell, bool) {
	centroid, ok := spatial.Centroid(cells)
	if !ok {
		return repository.RiskCell{}, false
	}
	return s.snap.RiskCells.Nearest(centroid)
}

// CellCluster returns the assignment of one exact grid cell
func (s *ClusterService) CellCluster(key models.GridKey) (repository.RiskCell, bool) {
	return s.snap.RiskCells.At(key)
}

// ClusterInfractions returns the top k infraction types of a cluster
func (s *ClusterService) ClusterInfractions(cluster, k int) []models.InfractionShare {
	top := s.snap.Profiles.Top(cluster, k)
	if top == nil {
		return []models.InfractionShare{}
	}
	return top
}
