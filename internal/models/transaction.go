package models

import "time"

// TransactionStatus tracks a raw transaction through the review flow.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusPosted     TransactionStatus = "posted"
	TransactionStatusReconciled TransactionStatus = "reconciled"
)

// TransactionSource records where a raw transaction came from.
type TransactionSource string

const (
	TransactionSourceFeed   TransactionSource = "bank_feed"
	TransactionSourceManual TransactionSource = "manual"
)

// RawTransaction is an externally sourced bank transaction, append-only.
// Amount is signed in cents: negative is an outflow, positive an inflow.
// The engine only ever touches the classification fields (Category,
// IsBusiness); everything else is owned by the ingestion side.
type RawTransaction struct {
	Base
	OrgID       string            `gorm:"type:uuid;not null;index" json:"org_id"`
	AccountID   string            `gorm:"type:uuid;not null" json:"account_id"`
	Amount      int64             `gorm:"type:bigint;not null" json:"amount"`
	Merchant    string            `json:"merchant,omitempty"`
	Description string            `gorm:"not null" json:"description"`
	Category    string            `json:"category,omitempty"`
	Date        time.Time         `gorm:"not null;index" json:"date"`
	IsBusiness  bool              `gorm:"default:true" json:"is_business"`
	Status      TransactionStatus `gorm:"not null;default:'pending'" json:"status"`
	Source      TransactionSource `gorm:"not null;default:'manual'" json:"source"`
}

// IsExpense reports whether the transaction is an outflow.
func (t *RawTransaction) IsExpense() bool { return t.Amount < 0 }

// IsIncome reports whether the transaction is an inflow.
func (t *RawTransaction) IsIncome() bool { return t.Amount > 0 }

// AbsAmount returns the unsigned amount in cents.
func (t *RawTransaction) AbsAmount() int64 {
	if t.Amount < 0 {
		return -t.Amount
	}
	return t.Amount
}
