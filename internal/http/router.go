// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/config"
	"github.com/creatorkit/go-creator-backend/internal/engine"
	"github.com/creatorkit/go-creator-backend/internal/http/handlers"
	"github.com/creatorkit/go-creator-backend/internal/http/middleware"
	"github.com/creatorkit/go-creator-backend/internal/identity"
	"github.com/creatorkit/go-creator-backend/internal/ratelimit"
	"github.com/creatorkit/go-creator-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), authentication and
// rate limiting, CORS and security headers, health and metrics endpoints, and
// then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Auth (before rate limiting so buckets key on the verified user)
//  8. Token-bucket rate limiter (burst smoothing) + sliding window (per-minute cap)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, verifier identity.Verifier, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // identity provider anon key must never be logged
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Identity resolution (before rate limiting)
	r.Use(middleware.Auth(verifier, cfg.Auth.Required))

	// 8) Token-bucket rate limiter per user/IP, then the per-minute window
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	window := ratelimit.New(cfg.RatePerWindow, cfg.RateWindow)
	r.Use(middleware.SlidingWindow(window, middleware.KeyByUserOrIP()))

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (disabled by default outside dev)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← engines/repo/db
	quotaSvc := &services.QuotaService{DB: db, DefaultLimit: cfg.MonthlyCredits}
	genSvc := &services.GenerateService{
		DB:    db,
		Quota: quotaSvc,
		Remote: engine.NewRemoteEngine(engine.RemoteConfig{
			APIKey:      cfg.Engine.APIKey,
			Model:       cfg.Engine.Model,
			BaseURL:     cfg.Engine.BaseURL,
			Timeout:     cfg.Engine.Timeout,
			MaxAttempts: cfg.Engine.MaxAttempts,
			Backoff:     cfg.Engine.Backoff,
		}),
		Local: engine.NewLocalEngine(),
		Model: cfg.Engine.Model,
	}
	profileSvc := &services.ProfileService{DB: db, DefaultLimit: cfg.MonthlyCredits}
	planSvc := &services.PlannerService{DB: db}
	statsSvc := &services.StatsService{DB: db}
	dailySvc := &services.DailyService{
		DB:           db,
		Remote:       genSvc.Remote,
		Local:        genSvc.Local,
		DefaultLimit: cfg.MonthlyCredits,
	}
	h := handlers.New(genSvc, quotaSvc, profileSvc, planSvc, statsSvc, dailySvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Generation
		api.POST("/generate", h.Generate)

		// Credits and referrals
		api.GET("/me/credits", h.Credits)
		api.POST("/me/referrals", h.RecordReferral)

		// Profile and account
		api.GET("/me/profile", h.Profile)
		api.PUT("/me/voice", h.UpdateVoice)
		api.GET("/me/export", h.ExportData)
		api.DELETE("/me", h.DeleteAccount)

		// Usage tracking
		api.POST("/me/usage", h.LogUsageEvent)
		api.GET("/me/stats", h.UsageStats)

		// Daily idea feed
		api.GET("/me/daily", h.DailyIdeas)
		api.POST("/me/daily/refresh", h.RefreshDailyIdeas)

		// Planner
		api.POST("/planner/slots", h.CreateSlot)
		api.GET("/planner/slots", h.ListSlots)
		api.PUT("/planner/slots/:id", h.UpdateSlot)
		api.DELETE("/planner/slots/:id", h.DeleteSlot)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
