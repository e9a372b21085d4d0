package models

// AccountingMethod is how the organization recognizes income and expenses.
type AccountingMethod string

const (
	AccountingMethodCash    AccountingMethod = "cash"
	AccountingMethodAccrual AccountingMethod = "accrual"
)

// BusinessProfile is per-organization context that biases account selection
// and explanation wording. Read-only input to the engine; an absent profile
// means "no bias".
type BusinessProfile struct {
	Base
	OrgID            string           `gorm:"type:uuid;not null;uniqueIndex" json:"org_id"`
	BusinessType     string           `json:"business_type,omitempty"`
	EntityType       string           `json:"entity_type,omitempty"`
	BusinessCategory string           `json:"business_category,omitempty"`
	NAICSCode        string           `json:"naics_code,omitempty"`
	AccountingMethod AccountingMethod `gorm:"not null;default:'cash'" json:"accounting_method"`
}
