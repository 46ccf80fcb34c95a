// Package services – GenerateService
//
// This file implements GenerateService, the orchestrator behind a generation
// request. The path through one call is:
//
//  1. Validate and sanitize input (content type, topic, niche, tone).
//  2. Fingerprint the canonical request payload into a cache key.
//  3. Cache lookup scoped to the user; a hit is returned without billing.
//  4. Quota check against the monthly credit ledger (miss path only).
//  5. Remote engine, with the local engine as a deterministic fallback.
//  6. Persist the result into the cache and append one billable usage event.
//
// Anonymous requests (empty user id) run the engines only: no voice, no
// cache, no quota, no billing.
//
// Every dependency read on the hot path fails open: a broken cache, quota, or
// usage table degrades the experience (no cache, no enforcement) but never
// turns a healthy engine into a 500. Billing is at-most-once: the usage event
// is appended only after a successful generation, so a failed request is
// never charged.
//
// Observability: public methods are OpenTelemetry-instrumented, and engine
// outcomes are counted with Prometheus.

package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/cachekey"
	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/engine"
	"github.com/creatorkit/go-creator-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	// generationsTotal counts completed generations by engine label and
	// whether the response came from cache.
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generations_total",
			Help: "Total number of generation responses served.",
		},
		[]string{"engine", "cache"},
	)

	// engineFallbacks counts remote-engine failures that were absorbed by
	// the local fallback.
	engineFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_fallbacks_total",
			Help: "Remote engine failures served by the local engine.",
		},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, engineFallbacks)
}

// Generator is the engine contract the orchestrator drives. Both
// engine.RemoteEngine and engine.LocalEngine satisfy it.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req engine.Request) ([]string, engine.Usage, error)
}

// Engine preferences accepted on a generation request.
const (
	EngineAuto   = "auto"
	EngineRemote = "remote"
	EngineLocal  = "local"
)

// GenerateInput is one sanitizable generation request.
type GenerateInput struct {
	Type    string
	Topic   string
	Niche   string
	Tone    string
	Engine  string         // auto | remote | local; empty means auto
	Bypass  bool           // skip the cache lookup, always generate fresh
	Payload map[string]any // raw request payload, fingerprinted for caching
}

// GenerateResult is the outcome returned to the HTTP layer.
type GenerateResult struct {
	Type     string // normalized content type
	Variants []string
	Engine   string
	Model    string
	Cached   bool
	Usage    engine.Usage
	Quota    *Quota // post-request view; nil when quota lookup failed open
}

// GenerateService orchestrates cache, quota, and engines for one request.
type GenerateService struct {
	DB     *gorm.DB
	Quota  *QuotaService
	Remote Generator
	Local  Generator

	// Model is recorded on cache entries produced by the remote engine.
	Model string

	// MaxTopicRunes bounds the topic length; zero means 200.
	MaxTopicRunes int
}

const defaultMaxTopicRunes = 200

// Generate runs the full orchestration for one request. See the file header
// for the ordering contract.
func (s *GenerateService) Generate(ctx context.Context, userID, email string, in GenerateInput) (*GenerateResult, error) {
	tr := otel.Tracer("services/GenerateService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("content.type", in.Type),
		),
	)
	defer span.End()

	// Normalize & validate input
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if !domain.ValidContentType(in.Type) {
		return nil, ErrUnsupportedType
	}
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return nil, ErrEmptyTopic
	}
	if utf8.RuneCountInString(in.Topic) < 2 {
		return nil, ErrTopicTooShort
	}
	in.Engine = strings.ToLower(strings.TrimSpace(in.Engine))
	switch in.Engine {
	case "", EngineAuto, EngineRemote, EngineLocal:
	default:
		return nil, ErrInvalidEngine
	}
	maxTopic := s.MaxTopicRunes
	if maxTopic <= 0 {
		maxTopic = defaultMaxTopicRunes
	}
	if utf8.RuneCountInString(in.Topic) > maxTopic {
		return nil, ErrTopicTooLong
	}
	in.Niche = strings.TrimSpace(in.Niche)
	in.Tone = strings.TrimSpace(in.Tone)

	// An empty userID is an anonymous request: no profile voice, no cache,
	// no quota, no billing. The engines still run.
	anon := userID == ""

	var voice domain.BrandVoice
	if !anon {
		voice = s.loadVoice(ctx, userID, email)
	}
	if in.Tone != "" {
		voice.Tone = in.Tone
	}
	voice = voice.Normalized()

	key := cachekey.MakeKey(userID, in.Type, in.Payload)
	span.SetAttributes(attribute.String("cache.key", key))

	// Cache lookup (skipped for anonymous or bypass; fail-open: any storage
	// error is a miss)
	if entry, err := s.lookupCache(ctx, key, userID, anon || in.Bypass); err == nil {
		s.logUsage(ctx, userID, domain.EventCacheHit, domain.JSONMap{
			"type":      in.Type,
			"cache_key": key,
		})
		generationsTotal.WithLabelValues(entry.Engine, "hit").Inc()
		return &GenerateResult{
			Type:     in.Type,
			Variants: entry.Variants,
			Engine:   entry.Engine,
			Model:    entry.Model,
			Cached:   true,
			Quota:    s.quotaView(ctx, userID, email),
		}, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		log.Warn().Err(err).Str("user_id", userID).Msg("cache lookup failed, treating as miss")
	}

	// Quota enforcement (known users, miss path only; fail-open on ledger
	// errors)
	if !anon {
		quota, qerr := s.Quota.Remaining(ctx, userID, email)
		if qerr != nil {
			log.Warn().Err(qerr).Str("user_id", userID).Msg("quota lookup failed, allowing request")
		} else if quota.Remaining <= 0 {
			return nil, ErrQuotaExceeded
		}
	}

	variants, usage, engineName, model := s.runEngines(ctx, in.Engine, engine.Request{
		Type:  in.Type,
		Topic: in.Topic,
		Niche: in.Niche,
		Tone:  voice.Tone,
		Voice: voice,
	})
	if len(variants) == 0 {
		// Both engines failed; the local engine only errors on an
		// unsupported type, which validation already excluded.
		return nil, ErrUnsupportedType
	}

	if !anon {
		// Persist cache entry (best effort; duplicate insert from a
		// concurrent request is benign). A bypassed request replaces the
		// stale entry so the next plain lookup sees the fresh output.
		if in.Bypass {
			if err := repo.DeleteCacheEntry(ctx, s.DB, key, userID); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("stale cache delete failed")
			}
		}
		entry := &domain.CacheEntry{
			CacheKey:         key,
			UserID:           userID,
			ContentType:      in.Type,
			Payload:          in.Payload,
			Variants:         variants,
			Engine:           engineName,
			Model:            model,
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
		}
		if err := repo.CreateCacheEntry(ctx, s.DB, entry); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("cache write failed")
		}

		// Bill exactly once, after success
		s.logUsage(ctx, userID, domain.EventGenerate, domain.JSONMap{
			"type":      in.Type,
			"cache_key": key,
			"engine":    engineName,
		})
	}
	generationsTotal.WithLabelValues(engineName, "miss").Inc()

	res := &GenerateResult{
		Type:     in.Type,
		Variants: variants,
		Engine:   engineName,
		Model:    model,
		Cached:   false,
		Usage:    usage,
	}
	if !anon {
		res.Quota = s.quotaView(ctx, userID, email)
	}
	return res, nil
}

// lookupCache wraps the cache read; a bypass request is treated as a miss
// without touching storage.
func (s *GenerateService) lookupCache(ctx context.Context, key, userID string, bypass bool) (*domain.CacheEntry, error) {
	if bypass {
		return nil, repo.ErrNotFound
	}
	return repo.GetCacheEntry(ctx, s.DB, key, userID)
}

// runEngines tries the remote engine per the caller's preference, then the
// local fallback. The local engine is deterministic and cannot fail for a
// validated request.
func (s *GenerateService) runEngines(ctx context.Context, pref string, req engine.Request) (variants []string, usage engine.Usage, name, model string) {
	if s.Remote != nil && pref != EngineLocal {
		v, u, err := s.Remote.Generate(ctx, req)
		if err == nil {
			return v, u, s.Remote.Name(), s.Model
		}
		if !errors.Is(err, engine.ErrMissingAPIKey) {
			log.Warn().Err(err).Str("type", req.Type).Msg("remote engine failed, falling back to local")
			engineFallbacks.Inc()
		}
	}
	if s.Local == nil {
		return nil, engine.Usage{}, "", ""
	}
	v, u, err := s.Local.Generate(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("type", req.Type).Msg("local engine failed")
		return nil, engine.Usage{}, "", ""
	}
	return v, u, s.Local.Name(), ""
}

// loadVoice returns the user's brand voice, or a zero voice when the profile
// read fails (fail-open).
func (s *GenerateService) loadVoice(ctx context.Context, userID, email string) domain.BrandVoice {
	p, err := repo.EnsureProfile(ctx, s.DB, userID, email, s.Quota.defaultLimit())
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("profile read failed, using default voice")
		return domain.BrandVoice{}
	}
	return p.BrandVoice
}

// quotaView re-reads the quota after the request for the response payload.
// Nil on failure; the response simply omits the counters.
func (s *GenerateService) quotaView(ctx context.Context, userID, email string) *Quota {
	q, err := s.Quota.Remaining(ctx, userID, email)
	if err != nil {
		return nil
	}
	return q
}

// logUsage appends a usage event, logging (not propagating) failures so the
// ledger can never fail a served request.
func (s *GenerateService) logUsage(ctx context.Context, userID, event string, meta domain.JSONMap) {
	if _, err := repo.LogUsage(ctx, s.DB, userID, event, meta); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("event", event).Msg("usage log append failed")
	}
}
