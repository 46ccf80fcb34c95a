// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Profile
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a profile is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - GetProfile(ctx, db, userID) -> *domain.Profile, error
//     Fetches a profile by user ID, or ErrNotFound if missing.
//
//   - EnsureProfile(ctx, db, userID, email, defaultLimit) -> *domain.Profile, error
//     Fetches the profile, creating a default free-plan row on first sight.
//
//   - UpdateBrandVoice(ctx, db, userID, voice) -> error
//     Replaces the stored brand voice for a user.
//
//   - UpdatePlan(ctx, db, userID, plan, limit) -> error
//     Updates plan and monthly credit limit together.
//
//   - DeleteUserData(ctx, db, userID) -> error
//     Removes the profile and every dependent row for the user.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.ProfileService and services.QuotaService) which enforces
// business rules on top of it.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetProfile fetches the profile for userID, or ErrNotFound if the user has
// no row yet. On other DB errors, the raw error is returned.
func GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// EnsureProfile fetches the profile for userID, creating a default row on
// first sight (plan "free", the given monthly credit limit, empty voice).
// Concurrent first requests may race on the insert; the loser re-reads the
// winner's row.
func EnsureProfile(ctx context.Context, db *gorm.DB, userID, email string, defaultLimit int) (*domain.Profile, error) {
	p, err := GetProfile(ctx, db, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	fresh := &domain.Profile{
		UserID:             userID,
		Email:              email,
		Plan:               "free",
		MonthlyCreditLimit: defaultLimit,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := db.WithContext(ctx).Create(fresh).Error; err != nil {
		// Lost the insert race: the row exists now.
		if existing, gerr := GetProfile(ctx, db, userID); gerr == nil {
			return existing, nil
		}
		return nil, err
	}
	return fresh, nil
}

// UpdateBrandVoice replaces the stored brand voice for userID. Returns
// ErrNotFound when the profile does not exist.
func UpdateBrandVoice(ctx context.Context, db *gorm.DB, userID string, voice domain.BrandVoice) error {
	res := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Update("brand_voice", voice)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePlan updates the plan name and monthly credit limit together.
// Returns ErrNotFound when the profile does not exist.
func UpdatePlan(ctx context.Context, db *gorm.DB, userID, plan string, limit int) error {
	res := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"plan":                 plan,
			"monthly_credit_limit": limit,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteUserData removes the profile row and every dependent row (usage
// events, cache entries, referrals, planner slots, daily ideas) for userID
// in a single transaction. Deleting a user that has no rows is not an error.
func DeleteUserData(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UsageEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.CacheEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("referrer_user_id = ?", userID).Delete(&domain.Referral{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&domain.PlannerSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.DailyIdea{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&domain.Profile{}).Error
	})
}
