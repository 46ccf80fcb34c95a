// Package services – ProfileService
//
// Profile reads and brand-voice updates, plus the two account-scoped bulk
// operations: data export and account deletion.

package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProfileService owns profile rows and account-level operations.
type ProfileService struct {
	DB *gorm.DB

	// DefaultLimit seeds new profiles; zero means DefaultMonthlyCredits.
	DefaultLimit int

	// ExportMaxRows bounds each section of an account export; zero means 1000.
	ExportMaxRows int
}

const defaultExportMaxRows = 1000

// Get returns the profile for userID, creating a default row on first sight.
func (s *ProfileService) Get(ctx context.Context, userID, email string) (*domain.Profile, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	limit := s.DefaultLimit
	if limit <= 0 {
		limit = DefaultMonthlyCredits
	}
	return repo.EnsureProfile(ctx, s.DB, userID, email, limit)
}

// UpdateVoice replaces the stored brand voice. Blank list entries are dropped
// before persisting.
func (s *ProfileService) UpdateVoice(ctx context.Context, userID string, voice domain.BrandVoice) error {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "UpdateVoice",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	voice.Forbidden = compactStrings(voice.Forbidden)
	voice.CTA = compactStrings(voice.CTA)
	voice.HashtagsBase = compactStrings(voice.HashtagsBase)
	voice.Tone = strings.TrimSpace(voice.Tone)

	err := repo.UpdateBrandVoice(ctx, s.DB, userID, voice)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}

// Export is the full account data bundle returned to the user.
type Export struct {
	Profile *domain.Profile     `json:"profile"`
	Usage   []domain.UsageEvent `json:"usage"`
	Cache   []domain.CacheEntry `json:"cache"`
}

// ExportData gathers the user's profile, usage log, and cached generations.
func (s *ProfileService) ExportData(ctx context.Context, userID string) (*Export, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "ExportData",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	p, err := repo.GetProfile(ctx, s.DB, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	max := s.ExportMaxRows
	if max <= 0 {
		max = defaultExportMaxRows
	}
	usage, err := repo.ListUsage(ctx, s.DB, userID, max)
	if err != nil {
		return nil, err
	}
	cache, err := repo.ListCacheEntries(ctx, s.DB, userID, max)
	if err != nil {
		return nil, err
	}
	return &Export{Profile: p, Usage: usage, Cache: cache}, nil
}

// DeleteAccount removes the profile and all dependent rows. Deleting an
// account that never touched the backend is not an error.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "DeleteAccount",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.DeleteUserData(ctx, s.DB, userID)
}

// compactStrings trims entries and drops blanks, preserving order.
func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
