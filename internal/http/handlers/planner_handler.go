// Planner HTTP handlers.
//
//   - POST   /planner/slots       (schedule content)
//   - GET    /planner/slots       (list, paginated)
//   - PUT    /planner/slots/{id}  (reschedule / edit note)
//   - DELETE /planner/slots/{id}  (cancel)
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/repo"
	"github.com/creatorkit/go-creator-backend/internal/services"
)

// CreateSlotRequest is the JSON payload for scheduling a planner slot.
type CreateSlotRequest struct {
	// Platform target: tiktok, reels, shorts, youtube, or x.
	Platform string `json:"platform" binding:"required" example:"tiktok"`
	// ScheduledAt is the publication time (RFC 3339, must be in the future).
	ScheduledAt time.Time `json:"scheduled_at" binding:"required" example:"2025-07-01T18:00:00Z"`
	// GenerationID optionally links a cached generation.
	GenerationID string `json:"generation_id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Note is free-form text shown in the planner.
	Note string `json:"note" example:"evening slot"`
}

// UpdateSlotRequest is the JSON payload for rescheduling a slot.
type UpdateSlotRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required" example:"2025-07-02T18:00:00Z"`
	Note        string    `json:"note" example:"moved to Friday"`
}

// ListSlotsResponse wraps a page of planner slots and pagination information.
type ListSlotsResponse struct {
	Slots      []domain.PlannerSlot `json:"slots"`
	Pagination Pagination           `json:"pagination"`
}

// CreateSlot godoc
// @ID          createSlot
// @Summary     Schedule content
// @Description Creates a planner slot for the current user.
// @Tags        Planner
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.CreateSlotRequest  true  "Slot payload"
//
// @Success     201  {object}  domain.PlannerSlot
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /planner/slots [post]
func (h *Handlers) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	slot, err := h.planSvc.Schedule(c.Request.Context(), userID(c), req.Platform, req.ScheduledAt, req.GenerationID, req.Note)
	switch {
	case errors.Is(err, services.ErrInvalidPlatform):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "platform must be one of: tiktok, reels, shorts, youtube, x")
		return
	case errors.Is(err, services.ErrInvalidSchedule):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "scheduled_at must be in the future")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, slot)
}

// ListSlots godoc
// @ID          listSlots
// @Summary     List planner slots (paginated)
// @Description Returns a page of the user's planner slots, soonest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Planner
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"  example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListSlotsResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /planner/slots [get]
func (h *Handlers) ListSlots(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.planSvc.(*services.PlannerService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.PlannerStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"slots:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.planSvc.ListPage(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListSlotsResponse{
		Slots: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// UpdateSlot godoc
// @ID          updateSlot
// @Summary     Reschedule a planner slot
// @Description Moves a slot to a new time and/or replaces its note.
// @Tags        Planner
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Slot ID (UUID)"  format(uuid)
// @Param       body       body    handlers.UpdateSlotRequest  true  "New schedule"
//
// @Success     200  {object}  domain.PlannerSlot
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Slot not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /planner/slots/{id} [put]
func (h *Handlers) UpdateSlot(c *gin.Context) {
	slotID := c.Param("id")
	if _, err := uuid.Parse(slotID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "slot id must be a UUID")
		return
	}
	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	slot, err := h.planSvc.Reschedule(c.Request.Context(), userID(c), slotID, req.ScheduledAt, req.Note)
	switch {
	case errors.Is(err, services.ErrSlotNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "planner slot not found")
		return
	case errors.Is(err, services.ErrInvalidSchedule):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "scheduled_at must be in the future")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, slot)
}

// DeleteSlot godoc
// @ID          deleteSlot
// @Summary     Cancel a planner slot
// @Tags        Planner
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Slot ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Slot not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /planner/slots/{id} [delete]
func (h *Handlers) DeleteSlot(c *gin.Context) {
	slotID := c.Param("id")
	if _, err := uuid.Parse(slotID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "slot id must be a UUID")
		return
	}
	err := h.planSvc.Cancel(c.Request.Context(), userID(c), slotID)
	if errors.Is(err, services.ErrSlotNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "planner slot not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
