package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
	"tallybook/internal/pagination"
	"tallybook/internal/services"
)

// ProposalHandler exposes the review queue: listing, approving and
// rejecting proposed entries, plus on-demand suggestion runs.
type ProposalHandler struct {
	proposalService    services.ProposalServicer
	suggestionService  services.SuggestionServicer
	accountService     services.AccountServicer
	profileService     services.BusinessProfileServicer
	transactionService services.TransactionServicer
	pipeline           *services.PipelineService
}

// NewProposalHandler creates a new ProposalHandler
func NewProposalHandler(
	proposalService services.ProposalServicer,
	suggestionService services.SuggestionServicer,
	accountService services.AccountServicer,
	profileService services.BusinessProfileServicer,
	transactionService services.TransactionServicer,
	pipeline *services.PipelineService,
) *ProposalHandler {
	return &ProposalHandler{
		proposalService:    proposalService,
		suggestionService:  suggestionService,
		accountService:     accountService,
		profileService:     profileService,
		transactionService: transactionService,
		pipeline:           pipeline,
	}
}

// ApproveRequest carries optional operator overrides applied at approval.
type ApproveRequest struct {
	DebitAccountID  *string `json:"debit_account_id"`
	CreditAccountID *string `json:"credit_account_id"`
	Memo            *string `json:"memo" binding:"omitempty,max=1000"`
	IsBusiness      *bool   `json:"is_business"`
}

// listProposalsQuery holds the review queue query parameters.
type listProposalsQuery struct {
	pagination.PageRequest
	Status string `form:"status" binding:"omitempty,proposal_status"`
}

// ListProposals returns the org's proposals in a given state, pending by
// default.
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listProposalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	status := models.ProposalStatusPending
	if query.Status != "" {
		status = models.ProposalStatus(query.Status)
	}

	result, err := h.proposalService.ListByStatus(orgID, status, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProposal returns a single proposal.
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	proposal, err := h.proposalService.GetByID(orgID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// Approve posts a pending proposal as a final entry, with optional edits.
func (h *ProposalHandler) Approve(c *gin.Context) {
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

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.proposalService.Approve(userID, orgID, c.Param("id"), &services.ApproveEdits{
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Memo:            req.Memo,
		IsBusiness:      req.IsBusiness,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// Reject marks a pending proposal as rejected.
func (h *ProposalHandler) Reject(c *gin.Context) {
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

	if err := h.proposalService.Reject(userID, orgID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// Suggest runs the suggestion pipeline synchronously for one transaction
// and returns the resulting proposal.
func (h *ProposalHandler) Suggest(c *gin.Context) {
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

	proposal, err := h.pipeline.Process(c.Request.Context(), userID, orgID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if proposal == nil {
		respondWithError(c, apperrors.ErrProposalFinalized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// Alternatives returns the primary suggestion for a transaction plus up to
// two alternative pairings.
func (h *ProposalHandler) Alternatives(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txn, err := h.transactionService.GetTransactionByID(orgID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	accounts, err := h.accountService.GetOrgAccounts(orgID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profile, err := h.profileService.GetProfile(orgID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alternatives, err := h.suggestionService.Alternatives(txn, accounts, profile)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, alternatives)
}

// GetFinalEntry returns a posted ledger entry with its lines.
func (h *ProposalHandler) GetFinalEntry(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.proposalService.GetFinalEntry(orgID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}
