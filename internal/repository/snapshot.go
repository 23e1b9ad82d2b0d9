package repository

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// SnapshotPaths locates the reference tables on disk.
// Only Historical is required; the rest are skipped when empty or missing.
type SnapshotPaths struct {
	Historical      string
	ClusterProfiles string
	RiskCells       string
	Apprehensions   string
}

// Snapshot bundles the reference data loaded at startup.
// It is never mutated after construction and is safe to share between requests.
type Snapshot struct {
	Historical    *Historical
	Profiles      *ClusterProfiles
	RiskCells     *RiskCells
	Apprehensions *Apprehensions
}

// LoadSnapshot reads every reference table
func LoadSnapshot(paths SnapshotPaths, log *zap.Logger) (*Snapshot, error) {
	f, err := os.Open(paths.Historical)
	if err != nil {
		return nil, fmt.Errorf("failed to open historical dataset: %w", err)
	}
	hist, err := LoadHistorical(f, paths.Historical)
	f.Close()
	if err != nil {
		return nil, err
	}
	log.Info("historical dataset loaded",
		zap.String("path", paths.Historical),
		zap.Int("records", hist.Records()),
		zap.Int("cells", hist.Len()))

	snap := &Snapshot{Historical: hist}

	if err := loadOptional(paths.ClusterProfiles, "cluster profiles", log, func(f *os.File) error {
		snap.Profiles, err = LoadClusterProfiles(f, paths.ClusterProfiles)
		return err
	}); err != nil {
		return nil, err
	}
	if err := loadOptional(paths.RiskCells, "risk cells", log, func(f *os.File) error {
		snap.RiskCells, err = LoadRiskCells(f, paths.RiskCells)
		return err
	}); err != nil {
		return nil, err
	}
	if err := loadOptional(paths.Apprehensions, "apprehensions", log, func(f *os.File) error {
		snap.Apprehensions, err = LoadApprehensions(f, paths.Apprehensions)
		return err
	}); err != nil {
		return nil, err
	}

	log.Info("reference tables ready",
		zap.Int("cluster_profiles", snap.Profiles.Len()),
		zap.Int("risk_cells", snap.RiskCells.Len()),
		zap.Int("apprehensions", snap.Apprehensions.Len()))
	return snap, nil
}

func loadOptional(path, what string, log *zap.Logger, load func(*os.File) error) error {
	f, ok, err := openOptional(path)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn("optional table not available", zap.String("table", what), zap.String("path", path))
		return nil
	}
	defer f.Close()
	return load(f)
}
