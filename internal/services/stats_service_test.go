package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

func newStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db, Now: func() time.Time { return fixedNow }}
}

func seedEvent(t *testing.T, db *gorm.DB, userID, event string, at time.Time) {
	t.Helper()
	ev := domain.UsageEvent{ID: uuid.NewString(), UserID: userID, Event: event, CreatedAt: at}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
}

func TestStatsRecord_NormalizesAndPersists(t *testing.T) {
	db := newSvcDB(t, &domain.UsageEvent{})
	svc := newStatsService(db)

	if err := svc.Record(context.Background(), "u1", "  Share ", domain.JSONMap{"channel": "tiktok"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var got domain.UsageEvent
	if err := db.First(&got, "user_id = ?", "u1").Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if got.Event != "share" {
		t.Fatalf("event = %q, want lowercased %q", got.Event, "share")
	}
	if got.Meta["channel"] != "tiktok" {
		t.Fatalf("meta = %v, want channel=tiktok", got.Meta)
	}
}

func TestStatsRecord_EmptyEventRejected(t *testing.T) {
	db := newSvcDB(t, &domain.UsageEvent{})
	svc := newStatsService(db)

	if err := svc.Record(context.Background(), "u1", "   ", nil); !errors.Is(err, ErrEmptyEvent) {
		t.Fatalf("err = %v, want ErrEmptyEvent", err)
	}
	var n int64
	db.Model(&domain.UsageEvent{}).Count(&n)
	if n != 0 {
		t.Fatalf("rows = %d, want 0", n)
	}
}

func TestStatsRecord_TruncatesOversizedKind(t *testing.T) {
	db := newSvcDB(t, &domain.UsageEvent{})
	svc := newStatsService(db)

	long := strings.Repeat("x", 100)
	if err := svc.Record(context.Background(), "u1", long, nil); err != nil {
		t.Fatalf("Record: %v", err)
	}
	var got domain.UsageEvent
	if err := db.First(&got, "user_id = ?", "u1").Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if len(got.Event) != maxEventKindLen {
		t.Fatalf("len(event) = %d, want %d", len(got.Event), maxEventKindLen)
	}
}

func TestStatsOverview_AggregatesByEventAndDay(t *testing.T) {
	db := newSvcDB(t, &domain.UsageEvent{})
	svc := newStatsService(db)

	// Inside the 30-day window ending at fixedNow (2025-06-15).
	seedEvent(t, db, "u1", domain.EventGenerate, fixedNow.AddDate(0, 0, -1))
	seedEvent(t, db, "u1", domain.EventGenerate, fixedNow.AddDate(0, 0, -1).Add(2*time.Hour))
	seedEvent(t, db, "u1", "share", fixedNow.AddDate(0, 0, -3))
	// Outside the window and someone else's row: both ignored.
	seedEvent(t, db, "u1", domain.EventGenerate, fixedNow.AddDate(0, 0, -40))
	seedEvent(t, db, "u2", "share", fixedNow.AddDate(0, 0, -1))

	ov, err := svc.Overview(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Range.Days != DefaultStatsDays {
		t.Fatalf("days = %d, want default %d", ov.Range.Days, DefaultStatsDays)
	}
	if !ov.Range.To.Equal(fixedNow) || !ov.Range.From.Equal(fixedNow.AddDate(0, 0, -DefaultStatsDays)) {
		t.Fatalf("range = %v..%v", ov.Range.From, ov.Range.To)
	}
	if ov.Total != 3 {
		t.Fatalf("total = %d, want 3", ov.Total)
	}
	if ov.Totals[domain.EventGenerate] != 2 || ov.Totals["share"] != 1 {
		t.Fatalf("totals = %v", ov.Totals)
	}
	day := fixedNow.AddDate(0, 0, -1).Format("2006-01-02")
	if ov.Daily[day] != 2 {
		t.Fatalf("daily[%s] = %d, want 2", day, ov.Daily[day])
	}
}

func TestStatsOverview_ClampsDays(t *testing.T) {
	db := newSvcDB(t, &domain.UsageEvent{})
	svc := newStatsService(db)

	ov, err := svc.Overview(context.Background(), "u1", 10_000)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Range.Days != MaxStatsDays {
		t.Fatalf("days = %d, want clamp to %d", ov.Range.Days, MaxStatsDays)
	}
}
