// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the per-user
// generation cache keyed by request fingerprint.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// GetCacheEntry fetches the cache entry for (cacheKey, userID), or
// ErrNotFound when no entry exists. Entries belonging to other users are
// never visible.
func GetCacheEntry(ctx context.Context, db *gorm.DB, cacheKey, userID string) (*domain.CacheEntry, error) {
	var e domain.CacheEntry
	err := db.WithContext(ctx).
		Where("cache_key = ? AND user_id = ?", cacheKey, userID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateCacheEntry inserts a cache entry. The unique index on
// (cache_key, user_id) makes concurrent duplicate inserts fail; callers treat
// that as benign since the first writer's entry is equivalent.
func CreateCacheEntry(ctx context.Context, db *gorm.DB, e *domain.CacheEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(e).Error
}

// DeleteCacheEntry removes the entry for (cacheKey, userID) if present.
// Deleting a missing entry is not an error.
func DeleteCacheEntry(ctx context.Context, db *gorm.DB, cacheKey, userID string) error {
	return db.WithContext(ctx).
		Where("cache_key = ? AND user_id = ?", cacheKey, userID).
		Delete(&domain.CacheEntry{}).Error
}

// ListCacheEntries returns the user's cache entries newest first, bounded by
// limit. Used by the account export endpoint.
func ListCacheEntries(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.CacheEntry, error) {
	var out []domain.CacheEntry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
