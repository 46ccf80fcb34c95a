// Package services – QuotaService
//
// This file implements QuotaService, the component that answers "how many
// credits does this user have left this month". The answer is derived, never
// stored: base limit from the profile row, plus a referral bonus, plus the
// paid-plan floor, minus the count of billable generation events since the
// start of the current UTC month.
//
// Observability: public methods are OpenTelemetry-instrumented.

package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultMonthlyCredits is the free-plan base limit applied to profiles
	// created on first sight.
	DefaultMonthlyCredits = 50

	// referralBatch referrals in the current month earn referralBonus extra
	// credits, repeatably (6 referrals = 2 bonuses).
	referralBatch = 3
	referralBonus = 20

	// paidFloor is the effective-limit floor for pro/team plans.
	paidFloor = 10000
)

// QuotaService computes effective monthly credit state per user.
type QuotaService struct {
	DB *gorm.DB

	// DefaultLimit seeds new profiles; zero means DefaultMonthlyCredits.
	DefaultLimit int

	// Now is the clock used for month-window computation; nil means
	// time.Now. Injected by tests.
	Now func() time.Time
}

// Quota is the derived credit state for one user at one instant.
type Quota struct {
	Plan        string    `json:"plan"`
	Limit       int       `json:"limit"`        // effective limit after bonus and plan floor
	Used        int       `json:"used"`         // billable generations this month
	Remaining   int       `json:"remaining"`    // Limit - Used, floored at 0
	Bonus       int       `json:"bonus"`        // referral bonus included in Limit
	PeriodStart time.Time `json:"period_start"` // start of the current UTC month window

	// Authenticated reports whether the caller presented a real identity.
	// The demo-header fallback keeps it false so clients can tell the two
	// apart. Set by the transport layer, not derived here.
	Authenticated bool `json:"authenticated"`
}

// Remaining computes the user's quota for the current UTC month. The profile
// row is created on first sight. Every read goes to the database; there is no
// cached counter to drift.
func (s *QuotaService) Remaining(ctx context.Context, userID, email string) (*Quota, error) {
	tr := otel.Tracer("services/QuotaService")
	ctx, span := tr.Start(ctx, "Remaining",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	profile, err := repo.EnsureProfile(ctx, s.DB, userID, email, s.defaultLimit())
	if err != nil {
		return nil, err
	}
	monthStart := repo.MonthStartUTC(s.now())

	refs, err := repo.CountReferrals(ctx, s.DB, userID, monthStart)
	if err != nil {
		return nil, err
	}
	bonus := int(refs/referralBatch) * referralBonus

	limit := profile.MonthlyCreditLimit
	if limit <= 0 {
		limit = s.defaultLimit()
	}
	limit += bonus
	if profile.Paid() && limit < paidFloor {
		limit = paidFloor
	}

	used, err := repo.CountGenerations(ctx, s.DB, userID, monthStart)
	if err != nil {
		return nil, err
	}

	remaining := limit - int(used)
	if remaining < 0 {
		remaining = 0
	}
	return &Quota{
		Plan:        profile.Plan,
		Limit:       limit,
		Used:        int(used),
		Remaining:   remaining,
		Bonus:       bonus,
		PeriodStart: monthStart,
	}, nil
}

// RecordReferral credits one referral to referrerUserID.
func (s *QuotaService) RecordReferral(ctx context.Context, referrerUserID, referredEmail string) error {
	tr := otel.Tracer("services/QuotaService")
	ctx, span := tr.Start(ctx, "RecordReferral",
		trace.WithAttributes(attribute.String("user.id", referrerUserID)),
	)
	defer span.End()

	_, err := repo.CreateReferral(ctx, s.DB, referrerUserID, referredEmail)
	return err
}

func (s *QuotaService) defaultLimit() int {
	if s.DefaultLimit > 0 {
		return s.DefaultLimit
	}
	return DefaultMonthlyCredits
}

func (s *QuotaService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
