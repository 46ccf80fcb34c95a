// Package services – StatsService
//
// This file implements StatsService, the per-user usage view: clients report
// lightweight product events (POST) and read an aggregated overview of their
// own activity (GET). Events land in the same append-only usage log the
// quota ledger bills from, but nothing recorded here is billable — only the
// generation pipeline writes EventGenerate rows.
//
// Aggregation happens in memory over one bounded query. A creator produces
// at most a few hundred events per month, so grouping in Go keeps the SQL
// trivial and the daily bucketing (UTC calendar days) explicit.
//
// Observability: public methods are OpenTelemetry-instrumented.

package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Day-range bounds for usage overviews.
const (
	DefaultStatsDays = 30
	MaxStatsDays     = 180
)

// maxEventKindLen matches the usage_events.event column width.
const maxEventKindLen = 32

// StatsService records client usage events and aggregates per-user activity.
type StatsService struct {
	DB *gorm.DB

	// Now is the clock for range computation; nil means time.Now.
	Now func() time.Time
}

// UsageRange describes the half-open window an overview covers.
type UsageRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	Days int       `json:"days"`
}

// UsageOverview is the aggregated activity of one user over a range.
type UsageOverview struct {
	Range  UsageRange       `json:"range"`
	Totals map[string]int64 `json:"totals_by_event"`
	Daily  map[string]int64 `json:"daily"` // UTC date "2006-01-02" → event count
	Total  int64            `json:"total"`
}

// Record appends one client-reported usage event. The event kind is
// required; meta is free-form and may be nil. Kinds are lowercased so
// "Share" and "share" aggregate together.
func (s *StatsService) Record(ctx context.Context, userID, event string, meta domain.JSONMap) error {
	tr := otel.Tracer("services/StatsService")
	ctx, span := tr.Start(ctx, "Record",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	event = strings.ToLower(strings.TrimSpace(event))
	if event == "" {
		return ErrEmptyEvent
	}
	if len(event) > maxEventKindLen {
		event = event[:maxEventKindLen]
	}
	_, err := repo.LogUsage(ctx, s.DB, userID, event, meta)
	return err
}

// Overview aggregates the user's events over the trailing days window.
// days is clamped to [1, MaxStatsDays]; zero or negative means the default.
func (s *StatsService) Overview(ctx context.Context, userID string, days int) (*UsageOverview, error) {
	tr := otel.Tracer("services/StatsService")
	ctx, span := tr.Start(ctx, "Overview",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("range.days", days),
		),
	)
	defer span.End()

	if days <= 0 {
		days = DefaultStatsDays
	}
	if days > MaxStatsDays {
		days = MaxStatsDays
	}

	to := s.now().UTC()
	from := to.AddDate(0, 0, -days)

	events, err := repo.ListUsageSince(ctx, s.DB, userID, from)
	if err != nil {
		return nil, err
	}

	out := &UsageOverview{
		Range:  UsageRange{From: from, To: to, Days: days},
		Totals: make(map[string]int64),
		Daily:  make(map[string]int64),
	}
	for _, ev := range events {
		out.Totals[ev.Event]++
		out.Daily[ev.CreatedAt.UTC().Format("2006-01-02")]++
		out.Total++
	}
	return out, nil
}

func (s *StatsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
