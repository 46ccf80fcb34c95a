// Generation HTTP handlers.
//
// This file exposes the core endpoint of the API:
//   - POST /generate   (produce content variants for a topic)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/engine"
	"github.com/creatorkit/go-creator-backend/internal/services"
	"github.com/creatorkit/go-creator-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// GenerateService defines the generation orchestration consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type GenerateService interface {
	// Generate runs validation, cache, quota, and engines for one request.
	Generate(ctx context.Context, userID, email string, in services.GenerateInput) (*services.GenerateResult, error)
}

// QuotaService exposes the monthly credit ledger.
type QuotaService interface {
	// Remaining computes the user's effective credit state for this month.
	Remaining(ctx context.Context, userID, email string) (*services.Quota, error)
	// RecordReferral credits one referral to the user.
	RecordReferral(ctx context.Context, referrerUserID, referredEmail string) error
}

// ProfileService exposes profile reads, voice updates, and account-scoped
// bulk operations.
type ProfileService interface {
	Get(ctx context.Context, userID, email string) (*domain.Profile, error)
	UpdateVoice(ctx context.Context, userID string, voice domain.BrandVoice) error
	ExportData(ctx context.Context, userID string) (*services.Export, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// PlannerService exposes planner slot lifecycle operations.
type PlannerService interface {
	Schedule(ctx context.Context, userID, platform string, scheduledAt time.Time, generationID, note string) (*domain.PlannerSlot, error)
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.PlannerSlot, int64, error)
	Reschedule(ctx context.Context, userID, slotID string, scheduledAt time.Time, note string) (*domain.PlannerSlot, error)
	Cancel(ctx context.Context, userID, slotID string) error
}

// StatsService exposes the per-user usage log and its aggregated view.
type StatsService interface {
	Record(ctx context.Context, userID, event string, meta domain.JSONMap) error
	Overview(ctx context.Context, userID string, days int) (*services.UsageOverview, error)
}

// DailyService exposes the daily content-idea feed.
type DailyService interface {
	Today(ctx context.Context, userID, email string) ([]domain.DailyIdea, error)
	Refresh(ctx context.Context, userID, email string) ([]domain.DailyIdea, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for generation, credits, profile, and
// planner. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	genSvc     GenerateService
	quotaSvc   QuotaService
	profileSvc ProfileService
	planSvc    PlannerService
	statsSvc   StatsService
	dailySvc   DailyService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(genSvc GenerateService, quotaSvc QuotaService, profileSvc ProfileService, planSvc PlannerService, statsSvc StatsService, dailySvc DailyService) *Handlers {
	return &Handlers{
		genSvc:     genSvc,
		quotaSvc:   quotaSvc,
		profileSvc: profileSvc,
		planSvc:    planSvc,
		statsSvc:   statsSvc,
		dailySvc:   dailySvc,
	}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// optionalUserID is userID without the demo fallback. The generate endpoint
// uses it so an unidentified caller runs anonymously (engines only, nothing
// cached or billed).
func optionalUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		return strings.TrimSpace(c.GetHeader("X-User-ID"))
	}
	return ""
}

// userEmail extracts the verified email, when the auth middleware put one in
// the context. Empty otherwise.
func userEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

//
// DTOs
//

// GenerateRequest is the JSON payload for a generation request.
type GenerateRequest struct {
	// Type selects the output shape: hook, script, caption, or hashtags.
	Type string `json:"type" binding:"required" example:"hook"`
	// Topic is the subject to generate content about.
	Topic string `json:"topic" binding:"required" example:"morning routines"`
	// Niche narrows the audience (optional).
	Niche string `json:"niche" example:"productivity"`
	// Tone overrides the profile's brand-voice tone for this request.
	Tone string `json:"tone" example:"casual"`
	// Engine picks the generation engine: auto (default), remote, or local.
	Engine string `json:"engine" example:"auto"`
	// BypassCache forces a fresh generation even when a cached result exists.
	BypassCache bool `json:"bypass_cache" example:"false"`
}

// GenerateResponse is the success envelope for POST /generate.
type GenerateResponse struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Type        string          `json:"type" example:"hook"`
	Variants    []string        `json:"variants"`
	Engine      string          `json:"engine" example:"remote"`
	Model       string          `json:"model,omitempty" example:"x-ai/grok-4-fast:free"`
	Cached      bool            `json:"cached"`
	Quota       *services.Quota `json:"quota,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.ClampInt(c.Query("page"), defaultPage, 1, 1<<30)
	pageSize = utils.ClampInt(c.Query("page_size"), defaultPageSize, 1, maxPageSize)
	return
}

//
// Handlers
//

// Generate godoc
// @ID          generate
// @Summary     Generate content variants
// @Description Produces hooks, scripts, captions, or hashtags for a topic. Identical requests are served from a per-user cache without consuming credits.
// @Tags        Generation
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       force      query   string  false "Set to 1 to bypass the response cache"
// @Param       body       body    handlers.GenerateRequest  true  "Generation payload"
//
// @Success     200  {object}  handlers.GenerateResponse
// @Header      200  {string}  X-Engine  "Engine that produced the output (remote or local)"
// @Header      200  {string}  X-Cache   "HIT or MISS"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429  {object}  handlers.ErrorResponse  "Quota exceeded"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /generate [post]
func (h *Handlers) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// ?force=1 is the query-param form of bypass_cache.
	bypass := req.BypassCache || c.Query("force") == "1"

	in := services.GenerateInput{
		Type:   req.Type,
		Topic:  req.Topic,
		Niche:  req.Niche,
		Tone:   req.Tone,
		Engine: req.Engine,
		Bypass: bypass,
		Payload: map[string]any{
			"topic": req.Topic,
			"niche": req.Niche,
			"tone":  req.Tone,
		},
	}

	res, err := h.genSvc.Generate(c.Request.Context(), optionalUserID(c), userEmail(c), in)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrUnsupportedType),
		errors.Is(err, engine.ErrUnsupportedType):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type must be one of: hook, script, caption, hashtags")
		return
	case errors.Is(err, services.ErrEmptyTopic):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "topic is required")
		return
	case errors.Is(err, services.ErrTopicTooShort):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "topic must be at least 2 characters")
		return
	case errors.Is(err, services.ErrTopicTooLong):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "topic too long")
		return
	case errors.Is(err, services.ErrInvalidEngine):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "engine must be one of: auto, remote, local")
		return
	case errors.Is(err, services.ErrQuotaExceeded):
		fail(c, http.StatusTooManyRequests, ErrCodeQuotaExceeded, "monthly credit quota exceeded")
		return
	default:
		fail(c, http.StatusInternalServerError, ErrCodeGenerationFailed, err.Error())
		return
	}

	// Response metadata the web client reads without parsing the body.
	c.Header("X-Engine", res.Engine)
	if res.Cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Header("X-Tokens-Prompt", strconv.Itoa(res.Usage.PromptTokens))
	c.Header("X-Tokens-Completion", strconv.Itoa(res.Usage.CompletionTokens))
	c.Header("X-Tokens-Total", strconv.Itoa(res.Usage.TotalTokens))

	ok(c, http.StatusOK, GenerateResponse{
		GeneratedAt: time.Now().UTC(),
		Type:        res.Type,
		Variants:    res.Variants,
		Engine:      res.Engine,
		Model:       res.Model,
		Cached:      res.Cached,
		Quota:       res.Quota,
	})
}
