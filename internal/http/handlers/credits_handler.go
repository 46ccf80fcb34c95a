// Credits and referral HTTP handlers.
//
//   - GET  /me/credits    (remaining monthly credits)
//   - POST /me/referrals  (record one successful referral)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ReferralRequest is the JSON payload for recording a referral.
type ReferralRequest struct {
	// Email of the referred user.
	Email string `json:"email" binding:"required,email" example:"friend@example.com"`
}

// Credits godoc
// @ID          credits
// @Summary     Remaining monthly credits
// @Description Returns the effective credit limit (base + referral bonus, with the paid-plan floor applied), usage, and remainder for the current UTC month.
// @Tags        Account
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  services.Quota
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/credits [get]
func (h *Handlers) Credits(c *gin.Context) {
	q, err := h.quotaSvc.Remaining(c.Request.Context(), userID(c), userEmail(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	q.Authenticated = authenticated(c)
	ok(c, http.StatusOK, q)
}

// authenticated reports whether the auth middleware resolved a verified
// identity. The X-User-ID demo header does not count.
func authenticated(c *gin.Context) bool {
	v, ok := c.Get("userID")
	if !ok {
		return false
	}
	s, ok := v.(string)
	return ok && s != ""
}

// RecordReferral godoc
// @ID          recordReferral
// @Summary     Record a referral
// @Description Credits one successful referral to the current user. Every third referral in a month adds bonus credits.
// @Tags        Account
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.ReferralRequest  true  "Referred email"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/referrals [post]
func (h *Handlers) RecordReferral(c *gin.Context) {
	var req ReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "a valid email is required")
		return
	}
	if err := h.quotaSvc.RecordReferral(c.Request.Context(), userID(c), strings.TrimSpace(req.Email)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
