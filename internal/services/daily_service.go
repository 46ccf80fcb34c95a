// Package services – DailyService
//
// This file implements the daily idea feed: three ready-to-film content
// ideas per user per UTC day, each bundling a hook, a short script, a
// caption, and a hashtag set. The batch is generated once through the same
// engine pair the generation pipeline uses, persisted, and served from the
// database for the rest of the day. Generating the feed never consumes
// credits; the usage log records it under its own non-billable event kind.
//
// Observability: public methods are OpenTelemetry-instrumented.

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/engine"
	"github.com/creatorkit/go-creator-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DailyIdeaCount is the size of one day's feed.
const DailyIdeaCount = 3

const (
	defaultDailyNiche = "content creation"
	maxDailyHashtags  = 12
	dailyDayLayout    = "2006-01-02"
)

// ideaAngles seed the three idea slots. Each angle becomes the topic for one
// idea, suffixed with the creator's niche so the engines stay on brand.
var ideaAngles = [DailyIdeaCount]string{
	"a beginner mistake to avoid",
	"a quick win you can film today",
	"a myth to debunk",
}

// DailyService builds and serves the per-user daily content-idea feed.
type DailyService struct {
	DB     *gorm.DB
	Remote Generator
	Local  Generator

	// DefaultLimit seeds profiles created on first contact; zero means
	// DefaultMonthlyCredits.
	DefaultLimit int

	// Now is the clock for day bucketing; nil means time.Now.
	Now func() time.Time
}

// Today returns the user's feed for the current UTC day, generating and
// persisting it on first request.
func (s *DailyService) Today(ctx context.Context, userID, email string) ([]domain.DailyIdea, error) {
	tr := otel.Tracer("services/DailyService")
	ctx, span := tr.Start(ctx, "Today",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	day := s.today()
	existing, err := repo.ListDailyIdeas(ctx, s.DB, userID, day)
	if err != nil {
		return nil, err
	}
	if len(existing) >= DailyIdeaCount {
		return existing, nil
	}
	return s.build(ctx, userID, email, day)
}

// Refresh discards today's feed and generates a fresh one.
func (s *DailyService) Refresh(ctx context.Context, userID, email string) ([]domain.DailyIdea, error) {
	tr := otel.Tracer("services/DailyService")
	ctx, span := tr.Start(ctx, "Refresh",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	day := s.today()
	if err := repo.DeleteDailyIdeas(ctx, s.DB, userID, day); err != nil {
		return nil, err
	}
	return s.build(ctx, userID, email, day)
}

// build generates one full batch and persists it. Each slot drives all four
// content types through the engine pair; a remote failure on any call falls
// back to the local engine, so a batch is always produced.
func (s *DailyService) build(ctx context.Context, userID, email, day string) ([]domain.DailyIdea, error) {
	voice := s.loadVoice(ctx, userID, email)

	ideas := make([]domain.DailyIdea, 0, DailyIdeaCount)
	for pos, angle := range ideaAngles {
		topic := fmt.Sprintf("%s in %s", angle, defaultDailyNiche)
		idea := domain.DailyIdea{
			UserID:   userID,
			Day:      day,
			Position: pos + 1,
		}

		hook, eng := s.firstVariant(ctx, domain.TypeHook, topic, voice)
		idea.Hook = hook
		idea.Engine = eng
		idea.Script, _ = s.firstVariant(ctx, domain.TypeScript, topic, voice)
		idea.Caption, _ = s.firstVariant(ctx, domain.TypeCaption, topic, voice)
		idea.Hashtags = s.hashtagSet(ctx, topic, voice)

		ideas = append(ideas, idea)
	}

	if err := repo.CreateDailyIdeas(ctx, s.DB, ideas); err != nil {
		return nil, err
	}
	if _, err := repo.LogUsage(ctx, s.DB, userID, domain.EventDailyIdeas, domain.JSONMap{"day": day}); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("usage log append failed")
	}
	return ideas, nil
}

// firstVariant runs one engine call for the given type and keeps the first
// variant. Returns the winning engine's name alongside.
func (s *DailyService) firstVariant(ctx context.Context, contentType, topic string, voice domain.BrandVoice) (string, string) {
	variants, eng := s.run(ctx, contentType, topic, voice)
	if len(variants) == 0 {
		return "", eng
	}
	return variants[0], eng
}

// hashtagSet runs the hashtags type, where the variant list is the tag set.
func (s *DailyService) hashtagSet(ctx context.Context, topic string, voice domain.BrandVoice) domain.Variants {
	tags, _ := s.run(ctx, domain.TypeHashtags, topic, voice)
	if len(tags) > maxDailyHashtags {
		tags = tags[:maxDailyHashtags]
	}
	return domain.Variants(tags)
}

func (s *DailyService) run(ctx context.Context, contentType, topic string, voice domain.BrandVoice) ([]string, string) {
	req := engine.Request{
		Type:  contentType,
		Topic: topic,
		Niche: defaultDailyNiche,
		Tone:  voice.Tone,
		Voice: voice,
	}
	if s.Remote != nil {
		v, _, err := s.Remote.Generate(ctx, req)
		if err == nil {
			return v, s.Remote.Name()
		}
		if !errors.Is(err, engine.ErrMissingAPIKey) {
			log.Warn().Err(err).Str("type", contentType).Msg("remote engine failed, falling back to local")
		}
	}
	if s.Local == nil {
		return nil, ""
	}
	v, _, err := s.Local.Generate(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("type", contentType).Msg("local engine failed")
		return nil, ""
	}
	return v, s.Local.Name()
}

// loadVoice mirrors the generation pipeline's fail-open voice read.
func (s *DailyService) loadVoice(ctx context.Context, userID, email string) domain.BrandVoice {
	limit := s.DefaultLimit
	if limit <= 0 {
		limit = DefaultMonthlyCredits
	}
	p, err := repo.EnsureProfile(ctx, s.DB, userID, email, limit)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("profile read failed, using default voice")
		return (domain.BrandVoice{}).Normalized()
	}
	return p.BrandVoice.Normalized()
}

func (s *DailyService) today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(dailyDayLayout)
}
