// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the PlannerSlot
// model.
//
// Error semantics mirror the rest of the package: ErrNotFound when a slot is
// missing or not owned by the caller, raw gorm errors otherwise. Deletes are
// soft (gorm.DeletedAt) so an export taken shortly after a delete still shows
// a consistent picture; DeleteUserData purges them for real.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// CreatePlannerSlot inserts a new slot owned by userID.
func CreatePlannerSlot(ctx context.Context, db *gorm.DB, userID, platform string, scheduledAt time.Time, generationID, note string) (*domain.PlannerSlot, error) {
	s := &domain.PlannerSlot{
		ID:           uuid.NewString(),
		UserID:       userID,
		Platform:     platform,
		ScheduledAt:  scheduledAt.UTC(),
		GenerationID: generationID,
		Note:         note,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// CountPlannerSlots returns the total number of slots owned by userID.
func CountPlannerSlots(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.PlannerSlot{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListPlannerSlotsPage returns a paginated slice of slots for userID, ordered
// by scheduled time ascending (soonest first). Use CountPlannerSlots for the
// pagination total.
func ListPlannerSlotsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.PlannerSlot, error) {
	var out []domain.PlannerSlot
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_at asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetPlannerSlot fetches a single slot by ID and owner, or ErrNotFound.
func GetPlannerSlot(ctx context.Context, db *gorm.DB, id, userID string) (*domain.PlannerSlot, error) {
	var s domain.PlannerSlot
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdatePlannerSlot updates the mutable fields of a slot, enforcing user
// ownership. Returns ErrNotFound if no rows are affected.
func UpdatePlannerSlot(ctx context.Context, db *gorm.DB, id, userID string, scheduledAt time.Time, note string) error {
	res := db.WithContext(ctx).
		Model(&domain.PlannerSlot{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"scheduled_at": scheduledAt.UTC(),
			"note":         note,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePlannerSlot soft-deletes a slot, enforcing user ownership. Returns
// ErrNotFound if the slot does not exist or is already deleted.
func DeletePlannerSlot(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.PlannerSlot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
