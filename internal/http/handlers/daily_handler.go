// Daily idea feed HTTP handlers.
//
//   - GET  /me/daily          (today's three content ideas)
//   - POST /me/daily/refresh  (discard and regenerate today's feed)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// DailyIdeasResponse wraps one day's feed.
type DailyIdeasResponse struct {
	Day   string             `json:"day" example:"2025-06-15"`
	Ideas []domain.DailyIdea `json:"ideas"`
}

// DailyIdeas godoc
// @ID          dailyIdeas
// @Summary     Today's content ideas
// @Description Returns three ready-to-film content ideas for the current UTC day, generating and storing them on first request. The feed never consumes credits.
// @Tags        Daily
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  handlers.DailyIdeasResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/daily [get]
func (h *Handlers) DailyIdeas(c *gin.Context) {
	ideas, err := h.dailySvc.Today(c.Request.Context(), userID(c), userEmail(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, dailyResponse(ideas))
}

// RefreshDailyIdeas godoc
// @ID          refreshDailyIdeas
// @Summary     Regenerate today's content ideas
// @Description Discards today's stored feed and generates a fresh batch of three ideas.
// @Tags        Daily
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  handlers.DailyIdeasResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/daily/refresh [post]
func (h *Handlers) RefreshDailyIdeas(c *gin.Context) {
	ideas, err := h.dailySvc.Refresh(c.Request.Context(), userID(c), userEmail(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, dailyResponse(ideas))
}

func dailyResponse(ideas []domain.DailyIdea) DailyIdeasResponse {
	out := DailyIdeasResponse{Ideas: ideas}
	if len(ideas) > 0 {
		out.Day = ideas[0].Day
	}
	return out
}
