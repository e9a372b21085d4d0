// Package taxonomy holds the closed category taxonomy and the keyword rule
// tables used for deterministic classification and account matching.
package taxonomy

import "strings"

// BusinessCategories is the closed taxonomy for business transactions.
var BusinessCategories = []string{
	"Meals & Entertainment",
	"Office Supplies",
	"Travel",
	"Software & Subscriptions",
	"Marketing & Advertising",
	"Professional Services",
	"Rent & Utilities",
	"Insurance",
	"Vehicle Expenses",
	"Equipment & Depreciation",
	"Cost of Goods Sold (COGS)",
	"Payroll & Benefits",
	"Taxes & Licenses",
	"Interest Expense",
	"Depreciation",
	"Other Business Expense",
}

// PersonalCategories is the closed taxonomy for personal transactions.
var PersonalCategories = []string{
	"Food & Dining",
	"Shopping",
	"Transportation",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Personal Care",
	"Travel",
	"Other Personal Expense",
}

// Categories returns the taxonomy for the given context.
func Categories(isBusiness bool) []string {
	if isBusiness {
		return BusinessCategories
	}
	return PersonalCategories
}

// FallbackCategory is the generic category used when nothing matches.
func FallbackCategory(isBusiness bool) string {
	if isBusiness {
		return "Other Business Expense"
	}
	return "Other Personal Expense"
}

// IsKnownCategory reports whether a category label belongs to the taxonomy,
// using fuzzy containment: exact match, or substring in either direction.
// A model may answer "Meals" for "Meals & Entertainment"; both count as known.
func IsKnownCategory(category string, isBusiness bool) bool {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return false
	}
	for _, known := range Categories(isBusiness) {
		k := strings.ToLower(known)
		if c == k || strings.Contains(c, k) || strings.Contains(k, c) {
			return true
		}
	}
	return false
}
