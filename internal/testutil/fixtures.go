package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"tallybook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestOrg creates an org with the given user as owner.
func CreateTestOrg(t *testing.T, db *gorm.DB, ownerID string) *models.Org {
	t.Helper()

	org := &models.Org{
		Name:     fmt.Sprintf("Test Org %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test org: %v", err)
	}
	CreateTestMembership(t, db, org.ID, ownerID, models.RoleOwner)
	return org
}

// CreateTestMembership links a user to an org with a role.
func CreateTestMembership(t *testing.T, db *gorm.DB, orgID, userID string, role models.Role) *models.Membership {
	t.Helper()

	membership := &models.Membership{
		OrgID:  orgID,
		UserID: userID,
		Role:   role,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("failed to create test membership: %v", err)
	}
	return membership
}

// CreateTestAccount creates an account with the given name and type.
func CreateTestAccount(t *testing.T, db *gorm.DB, orgID, name string, accountType models.AccountType) *models.Account {
	t.Helper()

	account := &models.Account{
		OrgID:    orgID,
		Name:     name,
		Type:     accountType,
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestChart creates a small but complete chart of accounts: a
// checking account, a credit card, a revenue account and a handful of
// expense accounts.
func CreateTestChart(t *testing.T, db *gorm.DB, orgID string) []models.Account {
	t.Helper()

	specs := []struct {
		name string
		typ  models.AccountType
	}{
		{"Business Checking", models.AccountTypeAsset},
		{"Business Credit Card", models.AccountTypeLiability},
		{"Service Revenue", models.AccountTypeIncome},
		{"Meals & Entertainment", models.AccountTypeExpense},
		{"Office Supplies", models.AccountTypeExpense},
		{"Software & Subscriptions", models.AccountTypeExpense},
		{"Travel", models.AccountTypeExpense},
		{"Uncategorized Expense", models.AccountTypeExpense},
	}

	accounts := make([]models.Account, 0, len(specs))
	for _, spec := range specs {
		accounts = append(accounts, *CreateTestAccount(t, db, orgID, spec.name, spec.typ))
	}
	return accounts
}

// CreateTestTransaction creates a raw transaction with the given signed
// amount in cents.
func CreateTestTransaction(t *testing.T, db *gorm.DB, orgID, accountID string, amount int64, merchant, description string) *models.RawTransaction {
	t.Helper()

	txn := &models.RawTransaction{
		OrgID:       orgID,
		AccountID:   accountID,
		Amount:      amount,
		Merchant:    merchant,
		Description: description,
		Date:        time.Now(),
		IsBusiness:  true,
		Status:      models.TransactionStatusPending,
		Source:      models.TransactionSourceManual,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestProfile creates a business profile for the org.
func CreateTestProfile(t *testing.T, db *gorm.DB, orgID, businessType string) *models.BusinessProfile {
	t.Helper()

	profile := &models.BusinessProfile{
		OrgID:            orgID,
		BusinessType:     businessType,
		AccountingMethod: models.AccountingMethodCash,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestProposal creates a pending proposal for a transaction.
func CreateTestProposal(t *testing.T, db *gorm.DB, orgID, transactionID, debitAccountID, creditAccountID string, amount int64) *models.ProposedEntry {
	t.Helper()

	proposal := &models.ProposedEntry{
		OrgID:           orgID,
		TransactionID:   transactionID,
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
		Amount:          amount,
		Confidence:      0.80,
		IsBusiness:      true,
		Status:          models.ProposalStatusPending,
		Source:          models.ProposalSourceEngine,
	}
	if err := db.Create(proposal).Error; err != nil {
		t.Fatalf("failed to create test proposal: %v", err)
	}
	return proposal
}
