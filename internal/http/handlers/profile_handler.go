// Profile and account HTTP handlers.
//
//   - GET    /me/profile  (profile with brand voice)
//   - PUT    /me/voice    (replace brand voice)
//   - GET    /me/export   (account data bundle)
//   - DELETE /me          (delete account data)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorkit/go-creator-backend/internal/domain"
	"github.com/creatorkit/go-creator-backend/internal/services"
)

// UpdateVoiceRequest is the JSON payload for replacing the brand voice.
// Omitted fields fall back to documented defaults at generation time.
type UpdateVoiceRequest struct {
	Tone         string   `json:"tone" example:"casual"`
	Emojis       *bool    `json:"emojis"`
	Forbidden    []string `json:"forbidden" example:"cheap,guaranteed"`
	CTA          []string `json:"cta" example:"Follow for more."`
	HashtagsBase []string `json:"hashtags_base" example:"#creator"`
}

// Profile godoc
// @ID          profile
// @Summary     Current user's profile
// @Description Returns the profile row (plan, credit limit, brand voice), creating a default one on first sight.
// @Tags        Account
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  domain.Profile
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/profile [get]
func (h *Handlers) Profile(c *gin.Context) {
	p, err := h.profileSvc.Get(c.Request.Context(), userID(c), userEmail(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateVoice godoc
// @ID          updateVoice
// @Summary     Replace the brand voice
// @Description Replaces the stored brand voice applied to all generated output.
// @Tags        Account
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.UpdateVoiceRequest  true  "New brand voice"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/voice [put]
func (h *Handlers) UpdateVoice(c *gin.Context) {
	var req UpdateVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	voice := domain.BrandVoice{
		Tone:         req.Tone,
		Emojis:       req.Emojis,
		Forbidden:    req.Forbidden,
		CTA:          req.CTA,
		HashtagsBase: req.HashtagsBase,
	}
	err := h.profileSvc.UpdateVoice(c.Request.Context(), userID(c), voice)
	if errors.Is(err, services.ErrProfileNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ExportData godoc
// @ID          exportData
// @Summary     Export account data
// @Description Returns the user's profile, usage log, and cached generations in one JSON bundle.
// @Tags        Account
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  services.Export
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/export [get]
func (h *Handlers) ExportData(c *gin.Context) {
	exp, err := h.profileSvc.ExportData(c.Request.Context(), userID(c))
	if errors.Is(err, services.ErrProfileNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="export.json"`)
	ok(c, http.StatusOK, exp)
}

// DeleteAccount godoc
// @ID          deleteAccount
// @Summary     Delete account data
// @Description Removes the profile and every dependent row. Idempotent.
// @Tags        Account
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     204  {string}  string "No Content"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me [delete]
func (h *Handlers) DeleteAccount(c *gin.Context) {
	if err := h.profileSvc.DeleteAccount(c.Request.Context(), userID(c)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
