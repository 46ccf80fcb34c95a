package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/cachekey"
	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/engine"
	"github.com/creatorkit/go-creator-backend/internal/repo"
)

// ---------- fakes ----------

type fakeEngine struct {
	name     string
	variants []string
	usage    engine.Usage
	err      error
	calls    int
	lastReq  engine.Request
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Generate(_ context.Context, req engine.Request) ([]string, engine.Usage, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, engine.Usage{}, f.err
	}
	return f.variants, f.usage, nil
}

func genModels() []any {
	return []any{
		&domain.Profile{}, &domain.UsageEvent{}, &domain.Referral{}, &domain.CacheEntry{},
	}
}

func newGenService(db *gorm.DB, remote, local Generator) *GenerateService {
	return &GenerateService{
		DB:     db,
		Quota:  &QuotaService{DB: db, Now: func() time.Time { return fixedNow }},
		Remote: remote,
		Local:  local,
		Model:  "x-ai/grok-4-fast:free",
	}
}

func hookInput() GenerateInput {
	return GenerateInput{
		Type:  "hook",
		Topic: "morning routines",
		Niche: "productivity",
		Payload: map[string]any{
			"topic": "morning routines",
			"niche": "productivity",
		},
	}
}

func countEvents(t *testing.T, db *gorm.DB, userID, event string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.UsageEvent{}).Where("user_id = ? AND event = ?", userID, event).Count(&n).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return n
}

// ---------- validation ----------

func TestGenerate_RejectsBadInput(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	s := newGenService(db, nil, &fakeEngine{name: "local", variants: []string{"v"}})

	cases := map[string]struct {
		mutate func(*GenerateInput)
		want   error
	}{
		"unknown type": {func(in *GenerateInput) { in.Type = "poem" }, ErrUnsupportedType},
		"blank topic":  {func(in *GenerateInput) { in.Topic = "   " }, ErrEmptyTopic},
		"huge topic": {func(in *GenerateInput) {
			for i := 0; i < 30; i++ {
				in.Topic += " morning routines"
			}
		}, ErrTopicTooLong},
		"one-char topic": {func(in *GenerateInput) { in.Topic = "x" }, ErrTopicTooShort},
		"unknown engine": {func(in *GenerateInput) { in.Engine = "gpu" }, ErrInvalidEngine},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := hookInput()
			tc.mutate(&in)
			_, err := s.Generate(context.Background(), "u1", "", in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
	if n := countEvents(t, db, "u1", domain.EventGenerate); n != 0 {
		t.Fatalf("rejected requests were billed: %d", n)
	}
}

// ---------- engine orchestration ----------

func TestGenerate_RemoteSuccessCachedAndBilledOnce(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	remote := &fakeEngine{name: "remote", variants: []string{"a", "b"}, usage: engine.Usage{TotalTokens: 99}}
	local := &fakeEngine{name: "local", variants: []string{"fallback"}}
	s := newGenService(db, remote, local)

	res, err := s.Generate(context.Background(), "u1", "u1@example.com", hookInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Cached || res.Engine != "remote" || res.Model != "x-ai/grok-4-fast:free" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(res.Variants) != 2 || res.Usage.TotalTokens != 99 {
		t.Fatalf("unexpected payload: %+v", res)
	}
	if local.calls != 0 {
		t.Fatalf("local engine called despite remote success")
	}
	if n := countEvents(t, db, "u1", domain.EventGenerate); n != 1 {
		t.Fatalf("billable events = %d, want 1", n)
	}

	// Cache entry persisted under the canonical key.
	key := cachekey.MakeKey("u1", "hook", hookInput().Payload)
	entry, err := repo.GetCacheEntry(context.Background(), db, key, "u1")
	if err != nil {
		t.Fatalf("cache entry missing: %v", err)
	}
	if entry.Engine != "remote" || entry.TotalTokens != 99 {
		t.Fatalf("unexpected cache entry: %+v", entry)
	}
}

func TestGenerate_RemoteFailureFallsBackToLocal(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	remote := &fakeEngine{name: "remote", err: &engine.RemoteError{StatusCode: 429, Err: errors.New("throttled")}}
	local := &fakeEngine{name: "local", variants: []string{"local one"}}
	s := newGenService(db, remote, local)

	res, err := s.Generate(context.Background(), "u1", "", hookInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Engine != "local" || res.Cached {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Model != "" {
		t.Fatalf("local result carries remote model: %+v", res)
	}
	// Fallback output is still billed: the user got a generation.
	if n := countEvents(t, db, "u1", domain.EventGenerate); n != 1 {
		t.Fatalf("billable events = %d, want 1", n)
	}
}

func TestGenerate_LocalPreferenceSkipsRemote(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	remote := &fakeEngine{name: "remote", variants: []string{"r"}}
	local := &fakeEngine{name: "local", variants: []string{"l"}}
	s := newGenService(db, remote, local)

	in := hookInput()
	in.Engine = EngineLocal
	res, err := s.Generate(context.Background(), "u1", "", in)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Engine != "local" {
		t.Fatalf("engine = %q, want local", res.Engine)
	}
	if remote.calls != 0 {
		t.Fatalf("remote called despite local preference")
	}
}

func TestGenerate_VoiceAndToneReachEngine(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	local := &fakeEngine{name: "local", variants: []string{"v"}}
	s := newGenService(db, nil, local)
	ctx := context.Background()

	// Store a brand voice first.
	if _, err := repo.EnsureProfile(ctx, db, "u1", "", 50); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if err := repo.UpdateBrandVoice(ctx, db, "u1", domain.BrandVoice{Forbidden: []string{"cheap"}}); err != nil {
		t.Fatalf("seed voice: %v", err)
	}

	in := hookInput()
	in.Tone = "Bold"
	if _, err := s.Generate(ctx, "u1", "", in); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if local.lastReq.Tone != "Bold" || local.lastReq.Voice.Tone != "Bold" {
		t.Fatalf("request tone override lost: %+v", local.lastReq)
	}
	if len(local.lastReq.Voice.Forbidden) != 1 || local.lastReq.Voice.Forbidden[0] != "cheap" {
		t.Fatalf("stored voice not loaded: %+v", local.lastReq.Voice)
	}
}

// ---------- cache semantics ----------

func TestGenerate_SecondIdenticalRequestHitsCache(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	local := &fakeEngine{name: "local", variants: []string{"v1", "v2"}}
	s := newGenService(db, nil, local)
	ctx := context.Background()

	if _, err := s.Generate(ctx, "u1", "", hookInput()); err != nil {
		t.Fatalf("first: %v", err)
	}
	res, err := s.Generate(ctx, "u1", "", hookInput())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !res.Cached || len(res.Variants) != 2 {
		t.Fatalf("expected cache hit: %+v", res)
	}
	if local.calls != 1 {
		t.Fatalf("engine ran on cache hit: %d calls", local.calls)
	}
	if n := countEvents(t, db, "u1", domain.EventGenerate); n != 1 {
		t.Fatalf("cache hit was billed: %d", n)
	}
	if n := countEvents(t, db, "u1", domain.EventCacheHit); n != 1 {
		t.Fatalf("cache hit not logged: %d", n)
	}
}

func TestGenerate_CacheIsPerUser(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	local := &fakeEngine{name: "local", variants: []string{"v"}}
	s := newGenService(db, nil, local)
	ctx := context.Background()

	if _, err := s.Generate(ctx, "u1", "", hookInput()); err != nil {
		t.Fatalf("u1: %v", err)
	}
	res, err := s.Generate(ctx, "u2", "", hookInput())
	if err != nil {
		t.Fatalf("u2: %v", err)
	}
	if res.Cached {
		t.Fatalf("u2 served u1's cache entry")
	}
	if local.calls != 2 {
		t.Fatalf("engine calls = %d, want 2", local.calls)
	}
}

func TestGenerate_BypassRegeneratesAndReplacesEntry(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	local := &fakeEngine{name: "local", variants: []string{"first"}}
	s := newGenService(db, nil, local)
	ctx := context.Background()

	if _, err := s.Generate(ctx, "u1", "", hookInput()); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	local.variants = []string{"second"}
	in := hookInput()
	in.Bypass = true
	res, err := s.Generate(ctx, "u1", "", in)
	if err != nil {
		t.Fatalf("bypass: %v", err)
	}
	if res.Cached || res.Variants[0] != "second" {
		t.Fatalf("bypass served stale output: %+v", res)
	}
	if local.calls != 2 {
		t.Fatalf("engine calls = %d, want 2", local.calls)
	}
	// Both generations billed.
	if n := countEvents(t, db, "u1", domain.EventGenerate); n != 2 {
		t.Fatalf("billable events = %d, want 2", n)
	}

	// The cached entry now holds the fresh output.
	key := cachekey.MakeKey("u1", "hook", hookInput().Payload)
	entry, err := repo.GetCacheEntry(ctx, db, key, "u1")
	if err != nil {
		t.Fatalf("cache entry missing: %v", err)
	}
	if len(entry.Variants) != 1 || entry.Variants[0] != "second" {
		t.Fatalf("cache not refreshed: %+v", entry.Variants)
	}
}

func TestGenerate_CacheHitServedEvenWhenQuotaExhausted(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	local := &fakeEngine{name: "local", variants: []string{"v"}}
	s := newGenService(db, nil, local)
	ctx := context.Background()

	if _, err := s.Generate(ctx, "u1", "", hookInput()); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	monthStart := repo.MonthStartUTC(fixedNow)
	seedGenerations(t, db, "u1", DefaultMonthlyCredits, monthStart.Add(time.Hour))

	// A fresh request is rejected…
	fresh := hookInput()
	fresh.Payload["topic"] = "different"
	fresh.Topic = "different"
	if _, err := s.Generate(ctx, "u1", "", fresh); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("fresh request past limit: err = %v, want ErrQuotaExceeded", err)
	}
	// …but the identical one is still served from cache.
	res, err := s.Generate(ctx, "u1", "", hookInput())
	if err != nil {
		t.Fatalf("cached request past limit: %v", err)
	}
	if !res.Cached {
		t.Fatalf("expected cache hit: %+v", res)
	}
}

func TestGenerate_AnonymousHasNoSideEffects(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	local := &fakeEngine{name: "local", variants: []string{"v"}}
	s := newGenService(db, nil, local)

	res, err := s.Generate(context.Background(), "", "", hookInput())
	if err != nil {
		t.Fatalf("anonymous generate: %v", err)
	}
	if res.Cached || res.Engine != "local" || res.Quota != nil {
		t.Fatalf("unexpected result: %+v", res)
	}

	var n int64
	if err := db.Model(&domain.UsageEvent{}).Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("anonymous request left usage rows: n=%d err=%v", n, err)
	}
	if err := db.Model(&domain.CacheEntry{}).Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("anonymous request left cache rows: n=%d err=%v", n, err)
	}
	if err := db.Model(&domain.Profile{}).Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("anonymous request created a profile: n=%d err=%v", n, err)
	}
}

// ---------- quota semantics ----------

func TestGenerate_QuotaLedgerFailsOpen(t *testing.T) {
	// No usage_events table: quota reads fail, generation must still work.
	db := newSvcDB(t, &domain.Profile{}, &domain.Referral{}, &domain.CacheEntry{})
	local := &fakeEngine{name: "local", variants: []string{"v"}}
	s := newGenService(db, nil, local)

	res, err := s.Generate(context.Background(), "u1", "", hookInput())
	if err != nil {
		t.Fatalf("Generate with broken ledger: %v", err)
	}
	if res.Cached || res.Engine != "local" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGenerate_FailedGenerationNotBilled(t *testing.T) {
	db := newSvcDB(t, genModels()...)
	remote := &fakeEngine{name: "remote", err: errors.New("boom")}
	s := newGenService(db, remote, nil) // no local fallback wired

	if _, err := s.Generate(context.Background(), "u1", "", hookInput()); err == nil {
		t.Fatal("expected error when both engines unavailable")
	}
	if n := countEvents(t, db, "u1", domain.EventGenerate); n != 0 {
		t.Fatalf("failed request was billed: %d", n)
	}
}
