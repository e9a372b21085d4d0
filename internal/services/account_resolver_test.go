package services

import (
	"testing"

	"tallybook/internal/models"
)

func makeAccount(id, name string, accountType models.AccountType) models.Account {
	a := models.Account{Name: name, Type: accountType, IsActive: true}
	a.ID = id
	return a
}

func TestResolveBankAccount(t *testing.T) {
	t.Run("prefers_checking", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Business Savings", models.AccountTypeAsset),
			makeAccount("a2", "Business Checking", models.AccountTypeAsset),
		}
		got := ResolveBankAccount(accounts)
		if got == nil || got.ID != "a2" {
			t.Fatalf("expected checking account, got %+v", got)
		}
	})

	t.Run("falls_back_to_savings", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Petty Cash", models.AccountTypeAsset),
			makeAccount("a2", "Business Savings", models.AccountTypeAsset),
		}
		got := ResolveBankAccount(accounts)
		if got == nil || got.ID != "a2" {
			t.Fatalf("expected savings account, got %+v", got)
		}
	})

	t.Run("falls_back_to_any_asset", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Service Revenue", models.AccountTypeIncome),
			makeAccount("a2", "Petty Cash", models.AccountTypeAsset),
		}
		got := ResolveBankAccount(accounts)
		if got == nil || got.ID != "a2" {
			t.Fatalf("expected any asset account, got %+v", got)
		}
	})

	t.Run("nil_when_no_asset", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Service Revenue", models.AccountTypeIncome),
		}
		if got := ResolveBankAccount(accounts); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})
}

func TestResolveCreditCardAccount(t *testing.T) {
	t.Run("matches_credit_liability", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Business Loan", models.AccountTypeLiability),
			makeAccount("a2", "Business Credit Card", models.AccountTypeLiability),
		}
		got := ResolveCreditCardAccount(accounts)
		if got == nil || got.ID != "a2" {
			t.Fatalf("expected credit card account, got %+v", got)
		}
	})

	t.Run("ignores_credit_named_assets", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Credit Union Checking", models.AccountTypeAsset),
		}
		if got := ResolveCreditCardAccount(accounts); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("nil_without_credit_liability", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Business Loan", models.AccountTypeLiability),
		}
		if got := ResolveCreditCardAccount(accounts); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})
}

func TestFirstSpecificExpense(t *testing.T) {
	t.Run("skips_catch_all", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Uncategorized Expense", models.AccountTypeExpense),
			makeAccount("a2", "Miscellaneous", models.AccountTypeExpense),
			makeAccount("a3", "Travel", models.AccountTypeExpense),
		}
		got := firstSpecificExpense(accounts)
		if got == nil || got.ID != "a3" {
			t.Fatalf("expected specific expense account, got %+v", got)
		}
	})

	t.Run("nil_when_only_catch_all", func(t *testing.T) {
		accounts := []models.Account{
			makeAccount("a1", "Other Expenses", models.AccountTypeExpense),
		}
		if got := firstSpecificExpense(accounts); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})
}
