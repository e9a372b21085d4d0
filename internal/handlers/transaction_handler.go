package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
	"tallybook/internal/pagination"
	"tallybook/internal/services"
)

// TransactionHandler handles raw transaction ingestion and edits.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the transaction creation payload.
// Amount is signed cents: negative for outflows, positive for inflows.
type CreateTransactionRequest struct {
	AccountID   string    `json:"account_id" binding:"required"`
	Amount      int64     `json:"amount" binding:"required"`
	Merchant    string    `json:"merchant" binding:"max=255"`
	Description string    `json:"description" binding:"required,max=1000"`
	Category    string    `json:"category" binding:"max=255"`
	Date        time.Time `json:"date" binding:"required"`
	IsBusiness  *bool     `json:"is_business"`
}

// UpdateTransactionRequest represents the editable classification fields.
type UpdateTransactionRequest struct {
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Merchant    *string `json:"merchant" binding:"omitempty,max=255"`
	Category    *string `json:"category" binding:"omitempty,max=255"`
	IsBusiness  *bool   `json:"is_business"`
}

// listTransactionsQuery holds the filter query parameters.
type listTransactionsQuery struct {
	pagination.PageRequest
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending posted reconciled"`
	IsBusiness *bool      `form:"is_business"`
}

// CreateTransaction ingests a manually entered transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
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

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txn, err := h.transactionService.CreateTransaction(userID, orgID, services.CreateTransactionInput{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Merchant:    req.Merchant,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		IsBusiness:  req.IsBusiness,
		Source:      models.TransactionSourceManual,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// UpdateTransaction edits a pending transaction's classification fields.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
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

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txn, err := h.transactionService.UpdateTransaction(userID, orgID, c.Param("id"), services.UpdateTransactionInput{
		Description: req.Description,
		Merchant:    req.Merchant,
		Category:    req.Category,
		IsBusiness:  req.IsBusiness,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// GetTransactionByID returns a single transaction.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// ListTransactions returns a paginated, filtered list of the org's
// transactions.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{
		FromDate:   query.FromDate,
		ToDate:     query.ToDate,
		IsBusiness: query.IsBusiness,
	}
	if query.Status != "" {
		status := models.TransactionStatus(query.Status)
		filter.Status = &status
	}

	result, err := h.transactionService.ListOrgTransactions(orgID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
