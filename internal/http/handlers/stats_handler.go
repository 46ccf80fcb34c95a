// Usage-tracking HTTP handlers.
//
//   - POST /me/usage  (record one client-reported usage event)
//   - GET  /me/stats  (aggregated activity over a trailing day range)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/services"
	"github.com/creatorkit/go-creator-backend/internal/utils"
)

// UsageEventRequest is the JSON payload for recording a usage event.
type UsageEventRequest struct {
	// Event is the kind of activity being reported, e.g. "share" or "copy".
	Event string `json:"event" binding:"required" example:"share"`
	// Meta carries optional free-form context for the event.
	Meta domain.JSONMap `json:"meta"`
}

// LogUsageEvent godoc
// @ID          logUsageEvent
// @Summary     Record a usage event
// @Description Appends one client-reported activity event to the user's usage log. Events recorded here never consume credits.
// @Tags        Account
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.UsageEventRequest  true  "Event to record"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/usage [post]
func (h *Handlers) LogUsageEvent(c *gin.Context) {
	var req UsageEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "an event kind is required")
		return
	}
	err := h.statsSvc.Record(c.Request.Context(), userID(c), req.Event, req.Meta)
	if errors.Is(err, services.ErrEmptyEvent) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "an event kind is required")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// UsageStats godoc
// @ID          usageStats
// @Summary     Usage statistics
// @Description Aggregates the user's activity over a trailing day range: totals per event kind, per-day counts, and the grand total.
// @Tags        Account
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"   example(user123)
// @Param       days       query   int     false "Range in days (1-180)"   example(30)
//
// @Success     200  {object}  services.UsageOverview
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/stats [get]
func (h *Handlers) UsageStats(c *gin.Context) {
	days := utils.ClampInt(c.Query("days"), services.DefaultStatsDays, 1, services.MaxStatsDays)
	ov, err := h.statsSvc.Overview(c.Request.Context(), userID(c), days)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ov)
}
