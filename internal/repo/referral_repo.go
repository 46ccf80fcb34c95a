// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for referrals,
// which feed the monthly credit bonus computed by the quota service.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// CreateReferral records one successful referral credited to referrerUserID.
func CreateReferral(ctx context.Context, db *gorm.DB, referrerUserID, referredEmail string) (*domain.Referral, error) {
	r := &domain.Referral{
		ID:             uuid.NewString(),
		ReferrerUserID: referrerUserID,
		ReferredEmail:  referredEmail,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// CountReferrals returns the number of referrals credited to referrerUserID
// with CreatedAt >= since.
func CountReferrals(ctx context.Context, db *gorm.DB, referrerUserID string, since time.Time) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Referral{}).
		Where("referrer_user_id = ? AND created_at >= ?", referrerUserID, since).
		Count(&total).Error
	return total, err
}
