package services

import (
	"context"
	"time"

	"tallybook/internal/models"
	"tallybook/internal/pagination"
)

// EntrySuggestion is the transient output of the suggestion engine. It is
// recomputed on demand and never stored directly; the durable form is a
// ProposedEntry.
type EntrySuggestion struct {
	DebitAccountID  string  `json:"debit_account_id"`
	CreditAccountID string  `json:"credit_account_id"`
	Amount          int64   `json:"amount"`
	Memo            string  `json:"memo"`
	Confidence      float64 `json:"confidence"`
	Explanation     string  `json:"explanation"`
}

// ClassificationMethod records which strategy produced a category.
type ClassificationMethod string

const (
	MethodModel   ClassificationMethod = "ai"
	MethodKeyword ClassificationMethod = "keyword"
)

// CategoryResult is the outcome of classifying a transaction description.
type CategoryResult struct {
	Category      string               `json:"category"`
	Confidence    float64              `json:"confidence"`
	Method        ClassificationMethod `json:"method"`
	IsNewCategory bool                 `json:"is_new_category"`
}

// ClassifyInput carries the free-text signals used for classification.
type ClassifyInput struct {
	Description string
	Merchant    string
	IsBusiness  bool
	Profile     *models.BusinessProfile
}

// Classifier maps a transaction's free text to a taxonomy category.
// Implementations never return an error: the model-backed classifier
// degrades to the keyword table on any failure.
type Classifier interface {
	Classify(ctx context.Context, input ClassifyInput) CategoryResult
}

// SuggestOptions carries optional inputs to suggestion generation.
// Override account IDs are best-effort: an override that does not name an
// account in the org's chart is ignored in favor of the heuristic choice.
type SuggestOptions struct {
	OverrideDebitAccountID  string
	OverrideCreditAccountID string
	Category                string
	Profile                 *models.BusinessProfile
}

// AlternativeSet is the read-side result of the alternatives generator.
type AlternativeSet struct {
	Primary      EntrySuggestion   `json:"primary"`
	Alternatives []EntrySuggestion `json:"alternatives"`
}

// SuggestionServicer is the entry suggestion engine.
type SuggestionServicer interface {
	Suggest(txn *models.RawTransaction, accounts []models.Account, opts SuggestOptions) (*EntrySuggestion, error)
	Alternatives(txn *models.RawTransaction, accounts []models.Account, profile *models.BusinessProfile) (*AlternativeSet, error)
}

// EnrichmentServicer asks a model back-end for a human-readable rationale.
type EnrichmentServicer interface {
	// Enrich returns nil on any failure or when no back-end is configured.
	// It never returns an error: enrichment is an enhancement, not a
	// correctness dependency.
	Enrich(ctx context.Context, suggestion *EntrySuggestion, txn *models.RawTransaction, accounts []models.Account, profile *models.BusinessProfile) *string
}

// ApproveEdits are operator overrides merged onto a proposal at approval.
type ApproveEdits struct {
	DebitAccountID  *string `json:"debit_account_id,omitempty"`
	CreditAccountID *string `json:"credit_account_id,omitempty"`
	Memo            *string `json:"memo,omitempty"`
	IsBusiness      *bool   `json:"is_business,omitempty"`
}

// ProposalServicer owns the proposed-entry state machine.
type ProposalServicer interface {
	Propose(actorID, orgID, transactionID string, suggestion EntrySuggestion, isBusiness bool) (*models.ProposedEntry, error)
	Approve(actorID, orgID, proposalID string, edits *ApproveEdits) (*models.FinalEntry, error)
	Reject(actorID, orgID, proposalID string) error
	GetByID(orgID, proposalID string) (*models.ProposedEntry, error)
	ListByStatus(orgID string, status models.ProposalStatus, page pagination.PageRequest) (*pagination.PageResponse[models.ProposedEntry], error)
	GetFinalEntry(orgID, entryID string) (*models.FinalEntry, error)
}

// AccountServicer is the chart-of-accounts resolver.
type AccountServicer interface {
	CreateAccount(actorID, orgID, name string, accountType models.AccountType, description string) (*models.Account, error)
	GetOrgAccounts(orgID string) ([]models.Account, error)
	ListOrgAccounts(orgID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(orgID, accountID string) (*models.Account, error)
	SeedDefaultAccounts(orgID string) error
}

// CreateTransactionInput is the payload for ingesting a raw transaction.
type CreateTransactionInput struct {
	AccountID   string
	Amount      int64
	Merchant    string
	Description string
	Category    string
	Date        time.Time
	IsBusiness  *bool
	Source      models.TransactionSource
}

// UpdateTransactionInput carries editable classification fields.
type UpdateTransactionInput struct {
	Description *string
	Merchant    *string
	Category    *string
	IsBusiness  *bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Status     *models.TransactionStatus
	IsBusiness *bool
}

// TransactionServicer owns raw transactions. Creating or editing one
// triggers suggestion generation out-of-band.
type TransactionServicer interface {
	CreateTransaction(actorID, orgID string, input CreateTransactionInput) (*models.RawTransaction, error)
	UpdateTransaction(actorID, orgID, transactionID string, input UpdateTransactionInput) (*models.RawTransaction, error)
	GetTransactionByID(orgID, transactionID string) (*models.RawTransaction, error)
	ListOrgTransactions(orgID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.RawTransaction], error)
}

// BusinessProfileServicer provides per-org business context.
type BusinessProfileServicer interface {
	// GetProfile returns nil without error when no profile exists;
	// an absent profile means "no bias".
	GetProfile(orgID string) (*models.BusinessProfile, error)
	UpsertProfile(actorID, orgID string, profile models.BusinessProfile) (*models.BusinessProfile, error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// OrgServicer manages organizations and memberships.
type OrgServicer interface {
	CreateOrg(ownerID, name string) (*models.Org, error)
	GetOrgByID(orgID string) (*models.Org, error)
	AddMember(actorID, orgID, userID string, role models.Role) (*models.Membership, error)
}

// Permission names a single guarded operation.
type Permission string

const (
	PermissionEditTransactions Permission = "EDIT_TRANSACTIONS"
	PermissionApproveEntries   Permission = "APPROVE_ENTRIES"
	PermissionViewLedger       Permission = "VIEW_LEDGER"
	PermissionManageAccounts   Permission = "MANAGE_ACCOUNTS"
)

// PermissionServicer is the authorization gate. Every mutating engine
// operation calls Require before touching any state.
type PermissionServicer interface {
	Require(userID, orgID string, permission Permission) error
	GetRole(userID, orgID string) (models.Role, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(orgID, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
