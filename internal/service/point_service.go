package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/risk-heatmap-go/internal/inference"
	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/repository"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
	"github.com/jengzang/risk-heatmap-go/internal/stats"
	"github.com/jengzang/risk-heatmap-go/pkg/metrics"
)

const (
	classHigh = "HIGH RISK"
	classLow  = "LOW RISK"

	pointProfileSize = 3
)

// PointService classifies a single location
type PointService struct {
	snap       *repository.Snapshot
	classifier inference.Classifier
	clusters   *ClusterService
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewPointService creates a point service. classifier may be nil, in which
// case Predict fails with ErrModelUnavailable.
func NewPointService(snap *repository.Snapshot, classifier inference.Classifier, clusters *ClusterService, m *metrics.Metrics, log *zap.Logger) *PointService {
	return &PointService{snap: snap, classifier: classifier, clusters: clusters, metrics: m, log: log}
}

// Available reports whether a classifier is loaded
func (s *PointService) Available() bool {
	return s.classifier != nil
}

// Predict classifies one (lat, lon, fecha) request
func (s *PointService) Predict(ctx context.Context, req models.PointRequest) (*models.PointPrediction, error) {
	if req.Lat == nil || req.Lon == nil || req.Date == "" {
		return nil, missing("lat,lon,fecha", "Latitud, longitud y fecha son requeridas")
	}
	if !spatial.ValidLatLng(*req.Lat, *req.Lon) {
		return nil, &ValidationError{Field: "lat,lon", Message: "Coordenadas no válidas"}
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if s.classifier == nil {
		return nil, fmt.Errorf("%w: classifier", ErrModelUnavailable)
	}

	key := models.NewGridKey(*req.Lat, *req.Lon)
	cell := models.GridCell{
		Lat:           key.Lat(),
		Lon:           key.Lon(),
		Month:         int(date.Month()),
		Day:           date.Day(),
		DayOfWeek:     weekday(date),
		RiskCallCount: s.snap.Historical.RiskCallMean(),
	}
	hist, seen := s.snap.Historical.History(key)
	if seen {
		cell.SevereCrimeCount = hist.SevereMean
		cell.RiskCallCount = hist.RiskCallMean
	}

	start := time.Now()
	probs, err := s.classifier.PredictProba(ctx, [][]float64{cell.Features()})
	s.metrics.ObserveInference("classifier", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}
	if len(probs) != 1 || len(probs[0]) < 2 {
		return nil, fmt.Errorf("%w: classifier returned malformed probabilities", ErrInference)
	}
	pLow, pHigh := probs[0][0], probs[0][1]

	out := &models.PointPrediction{
		Lat:             *req.Lat,
		Lon:             *req.Lon,
		LatGrid:         cell.Lat,
		LonGrid:         cell.Lon,
		Date:            date.Format("2006-01-02"),
		Classification:  classLow,
		ProbabilityHigh: stats.Round(pHigh, 4),
		ProbabilityLow:  stats.Round(pLow, 4),
		Uncertainty:     stats.Round(stats.Uncertainty(probs[0][:2]), 4),
		Entropy:         stats.Round(stats.ShannonEntropy(probs[0][:2]), 4),
	}
	if pHigh > 0.5 {
		out.Classification = classHigh
	}
	if seen {
		out.HistoricalEvents = stats.Round(float64(hist.Records), 2)
		out.HistoricalSevere = stats.Round(hist.SevereSum, 2)
	}

	if rc, ok := s.clusters.CellCluster(key); ok {
		cluster := rc.Cluster
		out.Cluster = &cluster
		out.RiskLevel = rc.RiskLevel
		out.Infractions = s.clusters.ClusterInfractions(rc.Cluster, pointProfileSize)
	}

	s.log.Debug("point classified",
		zap.Float64("lat_grid", cell.Lat),
		zap.Float64("lon_grid", cell.Lon),
		zap.String("clasificacion", out.Classification),
		zap.Bool("historial", seen))
	return out, nil
}
