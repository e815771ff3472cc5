package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wealthtracker/internal/models"
	"wealthtracker/internal/services"
)

// ProfileHandler handles profile-related requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// UpdateProfileRequest represents the request payload for updating a profile.
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,max=200" example:"Asha Rao"`
	Currency     *string `json:"currency" binding:"omitempty,iso4217" example:"INR"`
	RiskAppetite *string `json:"risk_appetite" binding:"omitempty,risk_appetite" example:"moderate"`
}

// GetProfile returns the caller's profile, creating it on first access.
// @Summary     Get profile
// @Description Get the authenticated user's profile. A default profile is created the first time.
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Profile "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetOrCreateProfile(c.Request.Context(), userID, c.GetString("email"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile handles updating the caller's profile.
// @Summary     Update profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Fields to update"
// @Success     200 {object} models.Profile "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.ProfileUpdate{FullName: req.FullName}
	if req.Currency != nil {
		currency := strings.ToUpper(*req.Currency)
		update.Currency = &currency
	}
	if req.RiskAppetite != nil {
		appetite := models.RiskAppetite(*req.RiskAppetite)
		update.RiskAppetite = &appetite
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PROFILE", "profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"currency": profile.Currency, "risk_appetite": profile.RiskAppetite})

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
