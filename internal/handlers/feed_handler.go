package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/logger"
	"tallybook/internal/models"
	"tallybook/internal/services"
)

// FeedHandler receives bank feed batches. Authenticated by API key, not
// JWT: transactions are created under the system actor.
type FeedHandler struct {
	transactionService services.TransactionServicer
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(transactionService services.TransactionServicer) *FeedHandler {
	return &FeedHandler{transactionService: transactionService}
}

// FeedTransaction is one transaction in a bank feed batch.
type FeedTransaction struct {
	AccountID   string    `json:"account_id" binding:"required"`
	Amount      int64     `json:"amount" binding:"required"`
	Merchant    string    `json:"merchant" binding:"max=255"`
	Description string    `json:"description" binding:"required,max=1000"`
	Date        time.Time `json:"date" binding:"required"`
}

// FeedBatchRequest is a batch of bank feed transactions for one org.
type FeedBatchRequest struct {
	Transactions []FeedTransaction `json:"transactions" binding:"required,min=1,max=500,dive"`
}

// IngestBatch ingests a batch of bank feed transactions. Each transaction
// is processed independently: one bad row does not fail the batch.
func (h *FeedHandler) IngestBatch(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FeedBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	created := make([]string, 0, len(req.Transactions))
	failed := 0
	for _, item := range req.Transactions {
		txn, err := h.transactionService.CreateTransaction(services.SystemActor, orgID, services.CreateTransactionInput{
			AccountID:   item.AccountID,
			Amount:      item.Amount,
			Merchant:    item.Merchant,
			Description: item.Description,
			Date:        item.Date,
			Source:      models.TransactionSourceFeed,
		})
		if err != nil {
			failed++
			logger.Get().Warnw("feed transaction rejected",
				"org_id", orgID,
				"description", item.Description,
				"error", err.Error())
			continue
		}
		created = append(created, txn.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"created": len(created),
		"failed":  failed,
		"ids":     created,
	})
}
