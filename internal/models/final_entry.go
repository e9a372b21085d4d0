package models

import "time"

// EntrySide is the side of an entry line in the double-entry convention.
type EntrySide string

const (
	SideDebit  EntrySide = "debit"
	SideCredit EntrySide = "credit"
)

// FinalEntry is a posted ledger fact. It owns its entry lines, whose debit
// and credit amounts must sum to the same value at all times. Final entries
// are immutable once created; corrections are new offsetting entries.
type FinalEntry struct {
	Base
	OrgID      string     `gorm:"type:uuid;not null;index" json:"org_id"`
	Date       time.Time  `gorm:"not null;index" json:"date"`
	Memo       string     `json:"memo"`
	Status     string     `gorm:"not null;default:'posted'" json:"status"`
	ApprovedBy string     `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	Lines []EntryLine `gorm:"foreignKey:EntryID" json:"lines,omitempty"`
}

// EntryLine is one leg of a posted entry. Amount is always positive;
// direction is carried by Side.
type EntryLine struct {
	Base
	EntryID   string    `gorm:"type:uuid;not null;index" json:"entry_id"`
	AccountID string    `gorm:"type:uuid;not null;index" json:"account_id"`
	Side      EntrySide `gorm:"not null" json:"side"`
	Amount    int64     `gorm:"type:bigint;not null" json:"amount"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
