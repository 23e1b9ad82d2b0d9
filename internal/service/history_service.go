package service

import (
	"context"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/repository"
)

// HistoryService reads the prediction audit log
type HistoryService struct {
	repo *repository.PredictionLogRepository
}

// NewHistoryService creates a history service. repo may be nil when the audit log is disabled.
func NewHistoryService(repo *repository.PredictionLogRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Enabled reports whether an audit log is configured
func (s *HistoryService) Enabled() bool {
	return s.repo != nil
}

// List returns recent predictions, newest first
func (s *HistoryService) List(ctx context.Context, filter models.HistoryFilter) ([]models.PredictionLog, error) {
	if s.repo == nil {
		return []models.PredictionLog{}, nil
	}
	return s.repo.List(ctx, filter)
}
