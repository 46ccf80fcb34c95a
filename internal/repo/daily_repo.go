// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the per-day
// content-idea batches: one creator gets one immutable batch per UTC day.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// ListDailyIdeas returns the ideas stored for (userID, day) ordered by
// position. An empty slice means no batch was generated for that day yet.
func ListDailyIdeas(ctx context.Context, db *gorm.DB, userID, day string) ([]domain.DailyIdea, error) {
	var out []domain.DailyIdea
	err := db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("position asc").
		Find(&out).Error
	return out, err
}

// CreateDailyIdeas inserts a batch of ideas in one transaction so a partial
// batch never becomes visible.
func CreateDailyIdeas(ctx context.Context, db *gorm.DB, ideas []domain.DailyIdea) error {
	if len(ideas) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range ideas {
		if ideas[i].ID == "" {
			ideas[i].ID = uuid.NewString()
		}
		if ideas[i].CreatedAt.IsZero() {
			ideas[i].CreatedAt = now
		}
	}
	return db.WithContext(ctx).Create(&ideas).Error
}

// DeleteDailyIdeas removes the batch for (userID, day). Deleting a day that
// has no batch is not an error.
func DeleteDailyIdeas(ctx context.Context, db *gorm.DB, userID, day string) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Delete(&domain.DailyIdea{}).Error
}
