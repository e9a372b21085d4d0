package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/logger"
	"tallybook/internal/models"
	"tallybook/internal/pagination"
)

// proposalService owns the proposed-entry state machine: engine output
// lands as a pending proposal, a human approves or rejects it, and
// approval posts an immutable final entry.
type proposalService struct {
	db          *gorm.DB
	permissions PermissionServicer
	audit       AuditServicer
}

// NewProposalService creates a new ProposalServicer.
func NewProposalService(db *gorm.DB, permissions PermissionServicer, audit AuditServicer) ProposalServicer {
	return &proposalService{db: db, permissions: permissions, audit: audit}
}

// Propose records an engine suggestion as a pending proposal. The
// operation is idempotent per transaction: an existing pending proposal is
// patched in place, so re-running the pipeline never piles up duplicates.
// A transaction whose proposal has already been approved or rejected is
// settled and cannot be re-proposed.
func (s *proposalService) Propose(actorID, orgID, transactionID string, suggestion EntrySuggestion, isBusiness bool) (*models.ProposedEntry, error) {
	if err := s.permissions.Require(actorID, orgID, PermissionEditTransactions); err != nil {
		return nil, err
	}

	var existing models.ProposedEntry
	err := s.db.Where("org_id = ? AND transaction_id = ?", orgID, transactionID).
		Order("created_at DESC").
		First(&existing).Error
	switch {
	case err == nil && existing.Terminal():
		return nil, apperrors.ErrProposalFinalized
	case err == nil:
		updates := map[string]interface{}{
			"debit_account_id":  suggestion.DebitAccountID,
			"credit_account_id": suggestion.CreditAccountID,
			"amount":            suggestion.Amount,
			"memo":              suggestion.Memo,
			"confidence":        suggestion.Confidence,
			"explanation":       suggestion.Explanation,
			"is_business":       isBusiness,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.GetByID(orgID, existing.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	proposal := &models.ProposedEntry{
		OrgID:           orgID,
		TransactionID:   transactionID,
		DebitAccountID:  suggestion.DebitAccountID,
		CreditAccountID: suggestion.CreditAccountID,
		Amount:          suggestion.Amount,
		Memo:            suggestion.Memo,
		Confidence:      suggestion.Confidence,
		Explanation:     suggestion.Explanation,
		IsBusiness:      isBusiness,
		Status:          models.ProposalStatusPending,
		Source:          models.ProposalSourceEngine,
	}
	if err := s.db.Create(proposal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("proposal created",
		"proposal_id", proposal.ID,
		"transaction_id", transactionID,
		"confidence", proposal.Confidence)
	return proposal, nil
}

// Approve flips a pending proposal to approved and posts the final entry
// with its two legs, all in one database transaction. The status flip is a
// conditional update guarded on the pending status, so two concurrent
// approvals can never both post: the loser's update matches zero rows.
func (s *proposalService) Approve(actorID, orgID, proposalID string, edits *ApproveEdits) (*models.FinalEntry, error) {
	if err := s.permissions.Require(actorID, orgID, PermissionApproveEntries); err != nil {
		return nil, err
	}

	proposal, err := s.GetByID(orgID, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Terminal() {
		return nil, apperrors.ErrProposalNotPending
	}

	var txn models.RawTransaction
	if err := s.db.Where("id = ? AND org_id = ?", proposal.TransactionID, orgID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	debitAccountID := proposal.DebitAccountID
	creditAccountID := proposal.CreditAccountID
	memo := proposal.Memo
	if edits != nil {
		if edits.DebitAccountID != nil {
			debitAccountID = *edits.DebitAccountID
		}
		if edits.CreditAccountID != nil {
			creditAccountID = *edits.CreditAccountID
		}
		if edits.Memo != nil {
			memo = *edits.Memo
		}
	}
	if err := s.verifyAccount(orgID, debitAccountID); err != nil {
		return nil, err
	}
	if err := s.verifyAccount(orgID, creditAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &models.FinalEntry{
		OrgID:      orgID,
		Date:       txn.Date,
		Memo:       memo,
		Status:     "posted",
		ApprovedBy: actorID,
		ApprovedAt: &now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ProposedEntry{}).
			Where("id = ? AND status = ?", proposal.ID, models.ProposalStatusPending).
			Update("status", models.ProposalStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrProposalNotPending
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		lines := []models.EntryLine{
			{EntryID: entry.ID, AccountID: debitAccountID, Side: models.SideDebit, Amount: proposal.Amount},
			{EntryID: entry.ID, AccountID: creditAccountID, Side: models.SideCredit, Amount: proposal.Amount},
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"status": models.TransactionStatusPosted}
		if edits != nil && edits.IsBusiness != nil {
			updates["is_business"] = *edits.IsBusiness
		}
		return tx.Model(&models.RawTransaction{}).
			Where("id = ? AND org_id = ?", txn.ID, orgID).
			Updates(updates).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(orgID, actorID, "proposal.approve", "final_entry", entry.ID, "", map[string]interface{}{
		"proposal_id":       proposal.ID,
		"transaction_id":    txn.ID,
		"debit_account_id":  debitAccountID,
		"credit_account_id": creditAccountID,
		"amount":            proposal.Amount,
	})
	logger.Get().Infow("proposal approved",
		"proposal_id", proposal.ID,
		"entry_id", entry.ID,
		"approved_by", actorID)

	return s.GetFinalEntry(orgID, entry.ID)
}

// Reject flips a pending proposal to rejected. The underlying transaction
// stays pending so it can be re-classified and re-proposed manually.
func (s *proposalService) Reject(actorID, orgID, proposalID string) error {
	if err := s.permissions.Require(actorID, orgID, PermissionApproveEntries); err != nil {
		return err
	}

	proposal, err := s.GetByID(orgID, proposalID)
	if err != nil {
		return err
	}
	if proposal.Terminal() {
		return apperrors.ErrProposalNotPending
	}

	res := s.db.Model(&models.ProposedEntry{}).
		Where("id = ? AND status = ?", proposal.ID, models.ProposalStatusPending).
		Update("status", models.ProposalStatusRejected)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProposalNotPending
	}

	s.audit.Log(orgID, actorID, "proposal.reject", "proposed_entry", proposal.ID, "", nil)
	return nil
}

// GetByID retrieves a proposal by ID scoped to an org.
func (s *proposalService) GetByID(orgID, proposalID string) (*models.ProposedEntry, error) {
	var proposal models.ProposedEntry
	if err := s.db.Where("id = ? AND org_id = ?", proposalID, orgID).First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &proposal, nil
}

// ListByStatus retrieves a paginated list of proposals in a given state,
// newest first. This backs the review queue.
func (s *proposalService) ListByStatus(orgID string, status models.ProposalStatus, page pagination.PageRequest) (*pagination.PageResponse[models.ProposedEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.ProposedEntry{}).Where("org_id = ? AND status = ?", orgID, status)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var proposals []models.ProposedEntry
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Transaction").
		Preload("DebitAccount").
		Preload("CreditAccount").
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(proposals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetFinalEntry retrieves a posted entry with its lines.
func (s *proposalService) GetFinalEntry(orgID, entryID string) (*models.FinalEntry, error) {
	var entry models.FinalEntry
	if err := s.db.Preload("Lines").Where("id = ? AND org_id = ?", entryID, orgID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

func (s *proposalService) verifyAccount(orgID, accountID string) error {
	var count int64
	if err := s.db.Model(&models.Account{}).
		Where("id = ? AND org_id = ?", accountID, orgID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
