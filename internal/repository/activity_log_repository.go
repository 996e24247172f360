package repository

import (
	"context"
	"time"

	"github.com/straye-as/kontragent-api/internal/domain"
	"gorm.io/gorm"
)

// ActivityLogRepository appends to and aggregates the kontragent activity log
type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create appends a single entry
func (r *ActivityLogRepository) Create(ctx context.Context, entry *domain.KontragentLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CountByAction counts entries grouped by action tag within a time range
func (r *ActivityLogRepository) CountByAction(ctx context.Context, start, end time.Time) (map[domain.ActionTag]int64, error) {
	type result struct {
		ActionType domain.ActionTag
		Count      int64
	}

	var results []result
	err := r.db.WithContext(ctx).Model(&domain.KontragentLog{}).
		Select("action_type, COUNT(*) as count").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Group("action_type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.ActionTag]int64, len(results))
	for _, r := range results {
		counts[r.ActionType] = r.Count
	}
	return counts, nil
}

// ListByKontragent returns the most recent entries of a kontragent, newest first
func (r *ActivityLogRepository) ListByKontragent(ctx context.Context, kontragentID int64, limit int) ([]domain.KontragentLog, error) {
	var entries []domain.KontragentLog
	err := r.db.WithContext(ctx).
		Where("kontragent_id = ?", kontragentID).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
