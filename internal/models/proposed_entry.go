package models

// ProposalStatus is the lifecycle state of a proposed entry.
// pending is the only non-terminal state; approved and rejected are sticky.
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// ProposalSource records how a proposed entry was produced.
type ProposalSource string

const (
	ProposalSourceEngine ProposalSource = "engine"
	ProposalSourceManual ProposalSource = "manual"
)

// ProposedEntry is the durable draft of a double-entry posting awaiting
// human review. At most one pending entry exists per (org, transaction);
// re-running the suggestion pipeline patches the pending row in place.
type ProposedEntry struct {
	Base
	OrgID           string         `gorm:"type:uuid;not null;index:idx_proposals_org_status" json:"org_id"`
	TransactionID   string         `gorm:"type:uuid;not null;index" json:"transaction_id"`
	DebitAccountID  string         `gorm:"type:uuid;not null" json:"debit_account_id"`
	CreditAccountID string         `gorm:"type:uuid;not null" json:"credit_account_id"`
	Amount          int64          `gorm:"type:bigint;not null" json:"amount"`
	Memo            string         `json:"memo"`
	Confidence      float64        `gorm:"not null" json:"confidence"`
	Explanation     string         `json:"explanation"`
	IsBusiness      bool           `gorm:"default:true" json:"is_business"`
	Status          ProposalStatus `gorm:"not null;default:'pending';index:idx_proposals_org_status" json:"status"`
	Source          ProposalSource `gorm:"not null;default:'engine'" json:"source"`

	Transaction   *RawTransaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
	DebitAccount  *Account        `gorm:"foreignKey:DebitAccountID" json:"debit_account,omitempty"`
	CreditAccount *Account        `gorm:"foreignKey:CreditAccountID" json:"credit_account,omitempty"`
}

// Terminal reports whether the proposal has reached a sticky end state.
func (p *ProposedEntry) Terminal() bool {
	return p.Status == ProposalStatusApproved || p.Status == ProposalStatusRejected
}
