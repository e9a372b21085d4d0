package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
	"tallybook/internal/services"
)

// OrgHandler handles organization management requests.
type OrgHandler struct {
	orgService services.OrgServicer
}

// NewOrgHandler creates a new OrgHandler
func NewOrgHandler(orgService services.OrgServicer) *OrgHandler {
	return &OrgHandler{orgService: orgService}
}

// CreateOrgRequest represents the org creation payload
type CreateOrgRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AddMemberRequest represents the membership creation payload
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,org_role"`
}

// CreateOrg creates a new organization owned by the caller, with the
// default chart of accounts seeded.
func (h *OrgHandler) CreateOrg(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	org, err := h.orgService.CreateOrg(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"org": org})
}

// GetOrg returns an organization by ID.
func (h *OrgHandler) GetOrg(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	org, err := h.orgService.GetOrgByID(orgID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"org": org})
}

// AddMember adds a user to the organization with a role.
func (h *OrgHandler) AddMember(c *gin.Context) {
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

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	membership, err := h.orgService.AddMember(userID, orgID, req.UserID, models.Role(req.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"membership": membership})
}
