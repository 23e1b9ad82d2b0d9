package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jengzang/risk-heatmap-go/internal/api"
	"github.com/jengzang/risk-heatmap-go/internal/cache"
	"github.com/jengzang/risk-heatmap-go/internal/config"
	"github.com/jengzang/risk-heatmap-go/internal/database"
	"github.com/jengzang/risk-heatmap-go/internal/handler"
	"github.com/jengzang/risk-heatmap-go/internal/inference"
	"github.com/jengzang/risk-heatmap-go/internal/repository"
	"github.com/jengzang/risk-heatmap-go/internal/service"
	"github.com/jengzang/risk-heatmap-go/internal/zones"
	"github.com/jengzang/risk-heatmap-go/pkg/metrics"
)

// app 持有启动后只读共享的全部依赖
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
	zones   *zones.Registry

	predictions *service.PredictionService
	points      *service.PointService
	diagnosis   *service.DiagnosisService
	history     *service.HistoryService

	closers []func() error
}

// newApp 按顺序初始化：参考数据 -> 模型 -> 数据库 -> 缓存 -> 服务
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, metrics: metrics.New(), zones: zones.Default()}

	snap, err := repository.LoadSnapshot(repository.SnapshotPaths{
		Historical:      cfg.DatasetPath,
		ClusterProfiles: cfg.ClusterProfilesPath,
		RiskCells:       cfg.RiskCellsPath,
		Apprehensions:   cfg.ApprehensionsPath,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	regressor, classifier, err := loadModels(cfg, log)
	if err != nil {
		return nil, err
	}

	var clusterModel *inference.ClusterModel
	if fileExists(cfg.DBSCANModelPath) {
		profiles := cfg.DBSCANProfilesPath
		if !fileExists(profiles) {
			profiles = ""
		}
		clusterModel, err = inference.LoadClusterModelFiles(cfg.DBSCANModelPath, profiles)
		if err != nil {
			return nil, err
		}
		log.Info("cluster model loaded", zap.Int("core_points", clusterModel.Len()), zap.Float64("eps_km", clusterModel.EpsKm))
	} else {
		log.Warn("cluster model not found, /api/diagnosticar disabled", zap.String("path", cfg.DBSCANModelPath))
	}

	var logs *repository.PredictionLogRepository
	if cfg.DBPath != "" {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := database.Open(database.Config{Path: cfg.DBPath}, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		logs = repository.NewPredictionLogRepository(db)
	}

	var c cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.CacheTTL(), log)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			c = rc
			a.closers = append(a.closers, rc.Close)
		}
	}

	clusters := service.NewClusterService(snap)
	a.predictions = service.NewPredictionService(a.zones, snap, regressor,
		clusters, service.NewHotspotService(snap, cfg.Watchlist),
		service.WithCache(c),
		service.WithAuditLog(logs),
		service.WithMetrics(a.metrics),
		service.WithLogger(log),
	)
	a.points = service.NewPointService(snap, classifier, clusters, a.metrics, log)
	a.diagnosis = service.NewDiagnosisService(clusterModel)
	a.history = service.NewHistoryService(logs)
	return a, nil
}

// loadModels 加载回归与分类模型，优先使用远程模型服务
func loadModels(cfg *config.Config, log *zap.Logger) (inference.Regressor, inference.Classifier, error) {
	if cfg.ModelServerURL != "" {
		remote := inference.NewRemoteModel(cfg.ModelServerURL, service.FeatureColumns, cfg.ModelServerTimeoutDuration())
		log.Info("using model server", zap.String("url", cfg.ModelServerURL))
		return remote, remote, nil
	}

	regressor, err := inference.LoadForestFile(cfg.ModelPath, service.FeatureColumns)
	if err != nil {
		return nil, nil, err
	}
	log.Info("risk model loaded", zap.String("path", cfg.ModelPath), zap.Int("trees", len(regressor.Trees)))

	var classifier inference.Classifier
	if fileExists(cfg.ClassifierPath) {
		forest, err := inference.LoadForestFile(cfg.ClassifierPath, service.FeatureColumns)
		if err != nil {
			return nil, nil, err
		}
		classifier = forest
		log.Info("classifier loaded", zap.String("path", cfg.ClassifierPath), zap.Int("trees", len(forest.Trees)))
	} else {
		log.Warn("classifier not found, /api/predecir_punto disabled", zap.String("path", cfg.ClassifierPath))
	}
	return regressor, classifier, nil
}

func (a *app) handlers() api.Handlers {
	return api.Handlers{
		Prediction: handler.NewPredictionHandler(a.predictions),
		Point:      handler.NewPointHandler(a.points, a.diagnosis),
		Zone:       handler.NewZoneHandler(a.zones),
		History:    handler.NewHistoryHandler(a.history),
	}
}

// Close 关闭缓存与数据库
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
