package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/jengzang/risk-heatmap-go/internal/cache"
	"github.com/jengzang/risk-heatmap-go/internal/inference"
	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/repository"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
	"github.com/jengzang/risk-heatmap-go/internal/stats"
	"github.com/jengzang/risk-heatmap-go/internal/zones"
	"github.com/jengzang/risk-heatmap-go/pkg/metrics"
)

// DefaultRiskLevel is reported when a zone cannot be matched to a cluster
const DefaultRiskLevel = "MEDIO"

// PredictionService runs the zone heatmap pipeline
type PredictionService struct {
	zones    *zones.Registry
	snap     *repository.Snapshot
	model    inference.Regressor
	clusters *ClusterService
	hotspots *HotspotService

	cache   cache.Cache
	logs    *repository.PredictionLogRepository
	metrics *metrics.Metrics
	log     *zap.Logger
}

// PredictionOption configures optional collaborators
type PredictionOption func(*PredictionService)

// WithCache stores rendered responses in c
func WithCache(c cache.Cache) PredictionOption {
	return func(s *PredictionService) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithAuditLog records every prediction in repo
func WithAuditLog(repo *repository.PredictionLogRepository) PredictionOption {
	return func(s *PredictionService) { s.logs = repo }
}

// WithMetrics records inference timings
func WithMetrics(m *metrics.Metrics) PredictionOption {
	return func(s *PredictionService) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) PredictionOption {
	return func(s *PredictionService) {
		if log != nil {
			s.log = log
		}
	}
}

// NewPredictionService creates a new prediction service
func NewPredictionService(reg *zones.Registry, snap *repository.Snapshot, model inference.Regressor,
	clusters *ClusterService, hotspots *HotspotService, opts ...PredictionOption) *PredictionService {
	s := &PredictionService{
		zones:    reg,
		snap:     snap,
		model:    model,
		clusters: clusters,
		hotspots: hotspots,
		cache:    cache.Noop{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// zoneResult is the normalized grid of one zone before rendering
type zoneResult struct {
	zone  models.Zone
	date  time.Time
	cells []models.ScoredCell
	norm  Normalization
}

func (s *PredictionService) validate(req models.PredictionRequest) (models.Zone, time.Time, error) {
	if req.Date == "" || req.Zone == "" {
		return models.Zone{}, time.Time{}, missing("fecha,zona", "Fecha y zona son requeridas")
	}
	zone, ok := s.zones.Lookup(req.Zone)
	if !ok {
		return models.Zone{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownZone, req.Zone)
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return models.Zone{}, time.Time{}, err
	}
	return zone, date, nil
}

// run builds, scores, filters and normalizes the grid of a zone
func (s *PredictionService) run(ctx context.Context, zone models.Zone, date time.Time) (*zoneResult, error) {
	grid := BuildGrid(s.snap.Historical, date)

	start := time.Now()
	scored, err := Score(ctx, s.model, grid)
	s.metrics.ObserveInference("regressor", time.Since(start))
	if err != nil {
		return nil, err
	}
	s.metrics.AddCellsScored(len(scored))

	inZone := spatial.FilterByBound(scored, spatial.ZoneBound(zone))
	if len(inZone) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, zone.Name)
	}

	normalized, norm := Normalize(inZone)
	return &zoneResult{zone: zone, date: date, cells: normalized, norm: norm}, nil
}

// Predict returns the heatmap of a zone for a date
func (s *PredictionService) Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error) {
	start := time.Now()
	zone, date, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	key := cache.PredictionKey("json", zone.Name, date.Format("2006-01-02"))
	var cached models.PredictionResponse
	if s.lookup(ctx, key, &cached) {
		s.audit(ctx, zone.Name, date, &cached, start, true)
		return &cached, nil
	}

	res, err := s.run(ctx, zone, date)
	if err != nil {
		return nil, err
	}
	resp := s.assemble(res)

	s.store(ctx, key, resp)
	s.audit(ctx, zone.Name, date, resp, start, false)
	return resp, nil
}

// PredictGeoJSON renders the same heatmap as a FeatureCollection of points
func (s *PredictionService) PredictGeoJSON(ctx context.Context, req models.PredictionRequest) (*geojson.FeatureCollection, error) {
	zone, date, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	key := cache.PredictionKey("geojson", zone.Name, date.Format("2006-01-02"))
	cached := geojson.NewFeatureCollection()
	if s.lookup(ctx, key, cached) {
		return cached, nil
	}

	res, err := s.run(ctx, zone, date)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, c := range res.cells {
		f := geojson.NewFeature(orb.Point{c.Lon, c.Lat})
		f.Properties["riesgo_norm"] = c.RiskNorm
		f.Properties["riesgo"] = c.RiskScore
		fc.Append(f)
	}
	fc.BBox = geojson.NewBBox(spatial.ZoneBound(zone))
	fc.ExtraMembers = geojson.Properties{
		"zona":  zone.Name,
		"fecha": date.Format("2006-01"),
	}

	s.store(ctx, key, fc)
	return fc, nil
}

func (s *PredictionService) assemble(res *zoneResult) *models.PredictionResponse {
	scores := make([]float64, len(res.cells))
	points := make([]models.HeatmapPoint, len(res.cells))
	for i, c := range res.cells {
		scores[i] = c.RiskScore
		points[i] = models.HeatmapPoint{c.Lat, c.Lon, c.RiskNorm}
	}
	mean := stats.Mean(scores)

	centroid, _ := spatial.Centroid(res.cells)

	resp := &models.PredictionResponse{
		Points: points,
		Count:  len(res.cells),
		Statistics: models.RiskStatistics{
			RiskMin:  finite(res.norm.Min),
			RiskMax:  finite(res.norm.Max),
			RiskMean: finite(mean),
		},
		Zone:              models.Centroid{Lat: centroid.Lat, Lon: centroid.Lon},
		Month:             res.date.Format("2006-01"),
		PredictedEvents:   stats.Round(finite(mean), 2),
		RiskLevel:         DefaultRiskLevel,
		InfractionProfile: []models.InfractionShare{},
		Hotspots:          s.hotspots.ZoneHotspots(res.zone),
	}

	if rc, ok := s.clusters.ZoneCluster(res.cells); ok {
		if rc.RiskLevel != "" {
			resp.RiskLevel = rc.RiskLevel
		}
		resp.InfractionProfile = s.clusters.ClusterInfractions(rc.Cluster, DefaultProfileSize)
	}
	return resp
}

// finite maps NaN to 0 so the value survives JSON encoding
func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (s *PredictionService) lookup(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	switch {
	case err == nil:
		s.metrics.CacheResult("hit")
		return true
	case errors.Is(err, cache.ErrCacheMiss):
		s.metrics.CacheResult("miss")
	default:
		s.metrics.CacheResult("error")
		s.log.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (s *PredictionService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.log.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *PredictionService) audit(ctx context.Context, zone string, date time.Time, resp *models.PredictionResponse, start time.Time, cached bool) {
	if s.logs == nil {
		return
	}
	entry := &models.PredictionLog{
		Zone:       zone,
		Date:       date.Format("2006-01-02"),
		Points:     resp.Count,
		RiskMean:   resp.Statistics.RiskMean,
		RiskLevel:  resp.RiskLevel,
		DurationMs: time.Since(start).Milliseconds(),
		Cached:     cached,
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		s.log.Warn("failed to write prediction log", zap.String("zona", zone), zap.Error(err))
	}
}
