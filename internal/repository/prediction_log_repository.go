package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/risk-heatmap-go/internal/models"
)

// PredictionLogRepository persists the audit trail of zone predictions
type PredictionLogRepository struct {
	db *sql.DB
}

// NewPredictionLogRepository creates a new prediction log repository
func NewPredictionLogRepository(db *sql.DB) *PredictionLogRepository {
	return &PredictionLogRepository{db: db}
}

// Insert stores one entry, assigning an ID when it has none
func (r *PredictionLogRepository) Insert(ctx context.Context, entry *models.PredictionLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO prediction_log (id, zone, date, points, risk_mean, risk_level, duration_ms, cached, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Zone, entry.Date, entry.Points, entry.RiskMean, entry.RiskLevel,
		entry.DurationMs, entry.Cached, entry.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction log: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first
func (r *PredictionLogRepository) List(ctx context.Context, filter models.HistoryFilter) ([]models.PredictionLog, error) {
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}

	query := `SELECT id, zone, date, points, risk_mean, risk_level, duration_ms, cached, created_at
		FROM prediction_log`
	var args []interface{}
	if filter.Zone != "" {
		query += " WHERE zone = ?"
		args = append(args, filter.Zone)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction log: %w", err)
	}
	defer rows.Close()

	logs := make([]models.PredictionLog, 0)
	for rows.Next() {
		var l models.PredictionLog
		var created int64
		if err := rows.Scan(&l.ID, &l.Zone, &l.Date, &l.Points, &l.RiskMean,
			&l.RiskLevel, &l.DurationMs, &l.Cached, &created); err != nil {
			return nil, fmt.Errorf("failed to scan prediction log: %w", err)
		}
		l.CreatedAt = time.UnixMilli(created).UTC()
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prediction log: %w", err)
	}
	return logs, nil
}
