package repo

import (
	"context"
	"testing"
	"time"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

func TestPlannerStats_CountError_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	_, _, err := PlannerStats(context.Background(), db, "u1")
	if err == nil {
		t.Fatalf("expected error due to missing planner_slots table")
	}
}

func TestPlannerStats_ZeroRows(t *testing.T) {
	db := newRepoDB(t, &domain.PlannerSlot{})
	count, maxAt, err := PlannerStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("PlannerStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestPlannerStats_Success_FilterAndMax(t *testing.T) {
	db := newRepoDB(t, &domain.PlannerSlot{})

	// Seed slots for two users; ensure UpdatedAt is exactly what we set.
	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // max for u1
	t3 := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)   // for other user

	s1 := &domain.PlannerSlot{ID: "s1", UserID: "u1", Platform: "tiktok", ScheduledAt: t1.Add(time.Hour), CreatedAt: t1, UpdatedAt: t1}
	s2 := &domain.PlannerSlot{ID: "s2", UserID: "u1", Platform: "reels", ScheduledAt: t2.Add(time.Hour), CreatedAt: t2, UpdatedAt: t2}
	s3 := &domain.PlannerSlot{ID: "s3", UserID: "u2", Platform: "shorts", ScheduledAt: t3.Add(time.Hour), CreatedAt: t3, UpdatedAt: t3}

	for _, s := range []*domain.PlannerSlot{s1, s2, s3} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed %s: %v", s.ID, err)
		}
	}

	count, maxAt, err := PlannerStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("PlannerStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected maxUpdatedAt %v, got %v", t2, maxAt)
	}
}

func TestPlannerStats_ExcludesSoftDeleted(t *testing.T) {
	db := newRepoDB(t, &domain.PlannerSlot{})

	now := time.Now().UTC()
	live := &domain.PlannerSlot{ID: "live", UserID: "u1", Platform: "tiktok", ScheduledAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now}
	gone := &domain.PlannerSlot{ID: "gone", UserID: "u1", Platform: "reels", ScheduledAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now}
	for _, s := range []*domain.PlannerSlot{live, gone} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed %s: %v", s.ID, err)
		}
	}
	if err := db.Delete(gone).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	count, _, err := PlannerStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("PlannerStats error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1 after soft delete, got %d", count)
	}
}

// Force the second query (SELECT updated_at ...) to fail by renaming the column.
func TestPlannerStats_SelectLatest_ErrorPath(t *testing.T) {
	db := newRepoDB(t, &domain.PlannerSlot{})

	// Seed at least one row so count > 0
	now := time.Now().UTC()
	if err := db.Create(&domain.PlannerSlot{
		ID:          "sx",
		UserID:      "uerr",
		Platform:    "tiktok",
		ScheduledAt: now.Add(time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	// Break the follow-up select by removing/renaming updated_at.
	if err := db.Exec(`ALTER TABLE planner_slots RENAME COLUMN updated_at TO updated_at_old`).Error; err != nil {
		t.Fatalf("rename column: %v", err)
	}

	_, _, err := PlannerStats(context.Background(), db, "uerr")
	if err == nil {
		t.Fatalf("expected error from latest-updated select after column rename")
	}
}
