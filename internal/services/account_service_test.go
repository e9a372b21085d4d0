package services

import (
	"testing"

	"tallybook/internal/models"
	"tallybook/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("owner_creates_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewPermissionService(db))
		user := testutil.CreateTestUser(t, db)
		org := testutil.CreateTestOrg(t, db, user.ID)

		account, err := svc.CreateAccount(user.ID, org.ID, "Equipment", models.AccountTypeExpense, "Cameras and rigs")
		testutil.AssertNoError(t, err)

		if account.ID == "" {
			t.Fatal("expected non-empty account ID")
		}
		if !account.IsActive {
			t.Error("expected account to be active")
		}
	})

	t.Run("duplicate_name_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewPermissionService(db))
		user := testutil.CreateTestUser(t, db)
		org := testutil.CreateTestOrg(t, db, user.ID)

		_, err := svc.CreateAccount(user.ID, org.ID, "Equipment", models.AccountTypeExpense, "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateAccount(user.ID, org.ID, "Equipment", models.AccountTypeExpense, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("bookkeeper_cannot_create", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewPermissionService(db))
		owner := testutil.CreateTestUser(t, db)
		org := testutil.CreateTestOrg(t, db, owner.ID)
		bookkeeper := testutil.CreateTestUser(t, db)
		testutil.CreateTestMembership(t, db, org.ID, bookkeeper.ID, models.RoleBookkeeper)

		_, err := svc.CreateAccount(bookkeeper.ID, org.ID, "Equipment", models.AccountTypeExpense, "")
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestGetOrgAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db, NewPermissionService(db))
	user := testutil.CreateTestUser(t, db)
	org := testutil.CreateTestOrg(t, db, user.ID)
	testutil.CreateTestChart(t, db, org.ID)

	// Inactive accounts are hidden from the engine's view.
	inactive := testutil.CreateTestAccount(t, db, org.ID, "Closed Account", models.AccountTypeAsset)
	testutil.AssertNoError(t, db.Model(inactive).Update("is_active", false).Error)

	accounts, err := svc.GetOrgAccounts(org.ID)
	testutil.AssertNoError(t, err)
	if len(accounts) != 8 {
		t.Errorf("expected 8 active accounts, got %d", len(accounts))
	}
	for _, a := range accounts {
		if a.Name == "Closed Account" {
			t.Error("inactive account leaked into active chart")
		}
	}
}

func TestSeedDefaultAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db, NewPermissionService(db))
	user := testutil.CreateTestUser(t, db)
	org := testutil.CreateTestOrg(t, db, user.ID)

	testutil.AssertNoError(t, svc.SeedDefaultAccounts(org.ID))

	accounts, err := svc.GetOrgAccounts(org.ID)
	testutil.AssertNoError(t, err)

	// The seeded chart must let every suggestion path resolve: a checking
	// account, a credit card, revenue, and a catch-all expense.
	if ResolveBankAccount(accounts) == nil {
		t.Error("seeded chart has no bank account")
	}
	if ResolveCreditCardAccount(accounts) == nil {
		t.Error("seeded chart has no credit card")
	}
	if firstOfType(accounts, models.AccountTypeIncome) == nil {
		t.Error("seeded chart has no income account")
	}
	if firstSpecificExpense(accounts) == nil {
		t.Error("seeded chart has no specific expense account")
	}
}
