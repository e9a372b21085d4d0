package models

// AccountType classifies an account in the double-entry convention.
// Assets and expenses increase on the debit side; liabilities, equity
// and income increase on the credit side.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// Account is a ledger account in an organization's chart of accounts.
// Reference data: the engine reads accounts but never mutates them.
type Account struct {
	Base
	OrgID       string      `gorm:"type:uuid;not null;index" json:"org_id"`
	Name        string      `gorm:"not null" json:"name"`
	Type        AccountType `gorm:"not null" json:"type"`
	Description string      `json:"description"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`
}

// IncreasesOnDebit reports whether a debit increases the account balance.
func (t AccountType) IncreasesOnDebit() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}
