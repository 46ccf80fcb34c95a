// Package services – PlannerService
//
// Content planner slots: schedule a generated piece for a platform at a point
// in time, list the upcoming schedule, reschedule, and cancel.

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// platforms the planner accepts; lowercase canonical form.
var allowedPlatforms = map[string]struct{}{
	"tiktok":  {},
	"reels":   {},
	"shorts":  {},
	"youtube": {},
	"x":       {},
}

// PlannerService owns planner slot lifecycle.
type PlannerService struct {
	DB *gorm.DB

	// Now is the clock used for schedule validation; nil means time.Now.
	Now func() time.Time
}

// Schedule creates a slot for userID. Platform must be in the supported set
// and scheduledAt must be in the future.
func (s *PlannerService) Schedule(ctx context.Context, userID, platform string, scheduledAt time.Time, generationID, note string) (*domain.PlannerSlot, error) {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "Schedule",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("platform", platform),
		),
	)
	defer span.End()

	platform = strings.ToLower(strings.TrimSpace(platform))
	if _, ok := allowedPlatforms[platform]; !ok {
		return nil, ErrInvalidPlatform
	}
	if scheduledAt.IsZero() || !scheduledAt.After(s.now()) {
		return nil, ErrInvalidSchedule
	}

	return repo.CreatePlannerSlot(ctx, s.DB, userID, platform, scheduledAt, generationID, strings.TrimSpace(note))
}

// ListPage returns one page of the user's schedule, soonest first, plus the
// total slot count for pagination metadata.
func (s *PlannerService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.PlannerSlot, int64, error) {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountPlannerSlots(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.PlannerSlot{}, 0, nil
	}
	items, err := repo.ListPlannerSlotsPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// Reschedule moves a slot and/or replaces its note.
func (s *PlannerService) Reschedule(ctx context.Context, userID, slotID string, scheduledAt time.Time, note string) (*domain.PlannerSlot, error) {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "Reschedule",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("slot.id", slotID),
		),
	)
	defer span.End()

	if scheduledAt.IsZero() || !scheduledAt.After(s.now()) {
		return nil, ErrInvalidSchedule
	}
	err := repo.UpdatePlannerSlot(ctx, s.DB, slotID, userID, scheduledAt, strings.TrimSpace(note))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return repo.GetPlannerSlot(ctx, s.DB, slotID, userID)
}

// Cancel soft-deletes a slot.
func (s *PlannerService) Cancel(ctx context.Context, userID, slotID string) error {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "Cancel",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("slot.id", slotID),
		),
	)
	defer span.End()

	err := repo.DeletePlannerSlot(ctx, s.DB, slotID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrSlotNotFound
	}
	return err
}

func (s *PlannerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
