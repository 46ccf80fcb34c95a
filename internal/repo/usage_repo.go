// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the append-only
// usage log: event insertion and the monthly billable-count query the quota
// service builds on.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// LogUsage appends one usage event for userID. Meta may be nil.
func LogUsage(ctx context.Context, db *gorm.DB, userID, event string, meta domain.JSONMap) (*domain.UsageEvent, error) {
	e := &domain.UsageEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Event:     event,
		Meta:      meta,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// CountGenerations returns the number of billable generation events for
// userID with CreatedAt >= since. Cache-hit events are never counted.
func CountGenerations(ctx context.Context, db *gorm.DB, userID string, since time.Time) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.UsageEvent{}).
		Where("user_id = ? AND event = ? AND created_at >= ?", userID, domain.EventGenerate, since).
		Count(&total).Error
	return total, err
}

// ListUsage returns the usage events for userID ordered newest first,
// bounded by limit. Used by the account export endpoint.
func ListUsage(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.UsageEvent, error) {
	var out []domain.UsageEvent
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListUsageSince returns event kind and timestamp for every usage event of
// userID with CreatedAt >= since, oldest first. The stats service aggregates
// these in memory; per-user volumes stay small (a few hundred rows a month).
func ListUsageSince(ctx context.Context, db *gorm.DB, userID string, since time.Time) ([]domain.UsageEvent, error) {
	var out []domain.UsageEvent
	err := db.WithContext(ctx).
		Select("event", "created_at").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// MonthStartUTC returns the first instant of t's month in UTC. Quota windows
// reset at this boundary.
func MonthStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
