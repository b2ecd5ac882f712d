package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/middleware"
	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/profileview"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/unlock"
)

type ProfileHandler struct {
	profileViewUseCase *profileview.ProfileViewUseCase
	unlockUseCase      *unlock.UnlockUseCase
}

func NewProfileHandler(profileViewUseCase *profileview.ProfileViewUseCase, unlockUseCase *unlock.UnlockUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileViewUseCase: profileViewUseCase,
		unlockUseCase:      unlockUseCase,
	}
}

// GetProfile handles GET /profiles/:id
// @Summary View a profile
// @Description Returns the profile with gated fields resolved for the caller. Anonymous callers get the public view. preview=true shows the owner their profile as a stranger sees it.
// @Tags profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Param preview query bool false "View own profile as a stranger"
// @Success 200 {object} visibility.View
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	viewerID := c.GetInt(middleware.ProfileIDKey)

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile id"})
		return
	}

	preview := c.Query("preview") == "true"

	view, err := h.profileViewUseCase.GetProfileView(c.Request.Context(), viewerID, targetID, preview)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdatePrivacyRequest represents a privacy settings change
type UpdatePrivacyRequest struct {
	ProfileImagePrivacy     string `json:"profile_image_privacy" binding:"required,privacy"`
	AdditionalImagesPrivacy string `json:"additional_images_privacy" binding:"required,privacy"`
}

// UpdatePrivacy handles PUT /profiles/me/privacy
// @Summary Update privacy settings
// @Description Sets who can see the caller's profile image and gallery
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdatePrivacyRequest true "Privacy levels: public, matches or private"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /profiles/me/privacy [put]
func (h *ProfileHandler) UpdatePrivacy(c *gin.Context) {
	profileID := c.GetInt(middleware.ProfileIDKey)

	var req UpdatePrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.profileViewUseCase.UpdatePrivacy(c.Request.Context(), profileID,
		domain.PrivacyLevel(req.ProfileImagePrivacy), domain.PrivacyLevel(req.AdditionalImagesPrivacy))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "privacy settings updated"})
}

// UnlockResponse represents the outcome of an unlock request
type UnlockResponse struct {
	Unlocked         bool `json:"unlocked"`
	RemainingCredits int  `json:"remaining_credits"`
	Charged          bool `json:"charged"`
}

// UnlockProfile handles POST /profiles/:id/unlock
// @Summary Unlock a profile
// @Description Spends credits to permanently reveal the target's gated fields. Repeat calls succeed without charging again.
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} UnlockResponse
// @Failure 402 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /profiles/{id}/unlock [post]
func (h *ProfileHandler) UnlockProfile(c *gin.Context) {
	viewerID := c.GetInt(middleware.ProfileIDKey)

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile id"})
		return
	}

	result, err := h.unlockUseCase.Unlock(c.Request.Context(), viewerID, targetID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, UnlockResponse{
		Unlocked:         true,
		RemainingCredits: result.RemainingCredits,
		Charged:          result.Charged,
	})
}
