package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
	"tallybook/internal/services"
)

// BusinessProfileHandler handles per-org business context.
type BusinessProfileHandler struct {
	profileService services.BusinessProfileServicer
}

// NewBusinessProfileHandler creates a new BusinessProfileHandler
func NewBusinessProfileHandler(profileService services.BusinessProfileServicer) *BusinessProfileHandler {
	return &BusinessProfileHandler{profileService: profileService}
}

// UpsertProfileRequest represents the business profile payload
type UpsertProfileRequest struct {
	BusinessType     string `json:"business_type" binding:"max=100"`
	EntityType       string `json:"entity_type" binding:"max=100"`
	BusinessCategory string `json:"business_category" binding:"max=255"`
	NAICSCode        string `json:"naics_code" binding:"max=10"`
	AccountingMethod string `json:"accounting_method" binding:"omitempty,accounting_method"`
}

// GetProfile returns the org's business profile, or an empty object when
// none has been set.
func (h *BusinessProfileHandler) GetProfile(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(orgID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"profile": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpsertProfile creates or replaces the org's business profile.
func (h *BusinessProfileHandler) UpsertProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.UpsertProfile(userID, orgID, models.BusinessProfile{
		BusinessType:     req.BusinessType,
		EntityType:       req.EntityType,
		BusinessCategory: req.BusinessCategory,
		NAICSCode:        req.NAICSCode,
		AccountingMethod: models.AccountingMethod(req.AccountingMethod),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
