package services

import (
	"strings"

	"tallybook/internal/models"
)

// Account resolution is heuristic, not schema-driven: the engine picks
// funding and category accounts by loose name matching over the typed
// chart. The ranking lives here so the income and expense paths share
// one testable resolver.

// ResolveBankAccount picks the funding asset account: the first asset
// account whose name contains "checking", else "savings", else any asset
// account. Returns nil when the org has no asset account at all.
func ResolveBankAccount(accounts []models.Account) *models.Account {
	if a := findByTypeAndKeyword(accounts, models.AccountTypeAsset, "checking"); a != nil {
		return a
	}
	if a := findByTypeAndKeyword(accounts, models.AccountTypeAsset, "savings"); a != nil {
		return a
	}
	return firstOfType(accounts, models.AccountTypeAsset)
}

// ResolveCreditCardAccount picks the first liability account whose name
// contains "credit", or nil when none exists.
func ResolveCreditCardAccount(accounts []models.Account) *models.Account {
	return findByTypeAndKeyword(accounts, models.AccountTypeLiability, "credit")
}

// findByTypeAndKeywords returns the first account of the given type whose
// name contains any of the keywords, in keyword order.
func findByTypeAndKeywords(accounts []models.Account, accountType models.AccountType, keywords []string) *models.Account {
	for _, kw := range keywords {
		if a := findByTypeAndKeyword(accounts, accountType, kw); a != nil {
			return a
		}
	}
	return nil
}

func findByTypeAndKeyword(accounts []models.Account, accountType models.AccountType, keyword string) *models.Account {
	for i := range accounts {
		if accounts[i].Type != accountType {
			continue
		}
		if strings.Contains(strings.ToLower(accounts[i].Name), keyword) {
			return &accounts[i]
		}
	}
	return nil
}

func firstOfType(accounts []models.Account, accountType models.AccountType) *models.Account {
	for i := range accounts {
		if accounts[i].Type == accountType {
			return &accounts[i]
		}
	}
	return nil
}

// catchAllNames marks expense accounts that should only be used as a last
// resort.
var catchAllNames = []string{"uncategorized", "miscellaneous", "other"}

func isCatchAll(account *models.Account) bool {
	name := strings.ToLower(account.Name)
	for _, marker := range catchAllNames {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// firstSpecificExpense returns the first expense account that is not a
// catch-all, or nil.
func firstSpecificExpense(accounts []models.Account) *models.Account {
	for i := range accounts {
		if accounts[i].Type != models.AccountTypeExpense {
			continue
		}
		if !isCatchAll(&accounts[i]) {
			return &accounts[i]
		}
	}
	return nil
}

// findAccountByID returns the account with the given ID, or nil.
func findAccountByID(accounts []models.Account, id string) *models.Account {
	if id == "" {
		return nil
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}
