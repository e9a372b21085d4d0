package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
	"tallybook/internal/pagination"
)

// ProposalTrigger receives transaction IDs whose suggestion pipeline
// should (re)run. Implementations must not block.
type ProposalTrigger interface {
	Enqueue(actorID, orgID, transactionID string)
}

// transactionService owns raw transaction ingestion and edits. Every
// successful mutation hands the transaction to the pipeline trigger so a
// fresh proposal is generated out-of-band.
type transactionService struct {
	db          *gorm.DB
	permissions PermissionServicer
	audit       AuditServicer
	trigger     ProposalTrigger
}

// NewTransactionService creates a new TransactionServicer. The trigger may
// be nil, in which case mutations do not schedule pipeline runs.
func NewTransactionService(db *gorm.DB, permissions PermissionServicer, audit AuditServicer, trigger ProposalTrigger) TransactionServicer {
	return &transactionService{db: db, permissions: permissions, audit: audit, trigger: trigger}
}

// CreateTransaction ingests a raw transaction and schedules suggestion
// generation for it.
func (s *transactionService) CreateTransaction(actorID, orgID string, input CreateTransactionInput) (*models.RawTransaction, error) {
	if err := s.permissions.Require(actorID, orgID, PermissionEditTransactions); err != nil {
		return nil, err
	}
	if input.Description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.Amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
	}

	var count int64
	if err := s.db.Model(&models.Account{}).
		Where("id = ? AND org_id = ?", input.AccountID, orgID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrAccountNotFound
	}

	txn := &models.RawTransaction{
		OrgID:       orgID,
		AccountID:   input.AccountID,
		Amount:      input.Amount,
		Merchant:    input.Merchant,
		Description: input.Description,
		Category:    input.Category,
		Date:        input.Date,
		IsBusiness:  true,
		Status:      models.TransactionStatusPending,
		Source:      input.Source,
	}
	if input.IsBusiness != nil {
		txn.IsBusiness = *input.IsBusiness
	}
	if txn.Source == "" {
		txn.Source = models.TransactionSourceManual
	}
	if err := s.db.Create(txn).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(orgID, actorID, "transaction.create", "raw_transaction", txn.ID, "", nil)
	s.schedule(actorID, orgID, txn.ID)
	return txn, nil
}

// UpdateTransaction edits the classification fields of a pending
// transaction and schedules a fresh suggestion run. A transaction that has
// already been posted is settled and cannot be edited.
func (s *transactionService) UpdateTransaction(actorID, orgID, transactionID string, input UpdateTransactionInput) (*models.RawTransaction, error) {
	if err := s.permissions.Require(actorID, orgID, PermissionEditTransactions); err != nil {
		return nil, err
	}

	txn, err := s.GetTransactionByID(orgID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != models.TransactionStatusPending {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "only pending transactions can be edited")
	}

	updates := map[string]interface{}{}
	if input.Description != nil {
		if *input.Description == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description cannot be empty")
		}
		updates["description"] = *input.Description
	}
	if input.Merchant != nil {
		updates["merchant"] = *input.Merchant
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.IsBusiness != nil {
		updates["is_business"] = *input.IsBusiness
	}
	if len(updates) == 0 {
		return txn, nil
	}

	if err := s.db.Model(txn).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(orgID, actorID, "transaction.update", "raw_transaction", txn.ID, "", updates)
	s.schedule(actorID, orgID, txn.ID)
	return s.GetTransactionByID(orgID, transactionID)
}

// GetTransactionByID retrieves a transaction by ID scoped to an org.
func (s *transactionService) GetTransactionByID(orgID, transactionID string) (*models.RawTransaction, error) {
	var txn models.RawTransaction
	if err := s.db.Where("id = ? AND org_id = ?", transactionID, orgID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &txn, nil
}

// ListOrgTransactions retrieves a paginated, filtered list of
// transactions for an org, newest first.
func (s *transactionService) ListOrgTransactions(orgID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.RawTransaction], error) {
	page.Defaults()

	base := s.db.Model(&models.RawTransaction{}).Where("org_id = ?", orgID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.IsBusiness != nil {
		base = base.Where("is_business = ?", *filter.IsBusiness)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txns []models.RawTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, created_at DESC").
		Find(&txns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(txns, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *transactionService) schedule(actorID, orgID, transactionID string) {
	if s.trigger != nil {
		s.trigger.Enqueue(actorID, orgID, transactionID)
	}
}
