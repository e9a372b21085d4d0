package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
	"tallybook/internal/pagination"
)

// accountService handles chart-of-accounts lookups.
type accountService struct {
	db          *gorm.DB
	permissions PermissionServicer
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, permissions PermissionServicer) AccountServicer {
	return &accountService{db: db, permissions: permissions}
}

// CreateAccount adds an account to the org's chart of accounts.
func (s *accountService) CreateAccount(actorID, orgID, name string, accountType models.AccountType, description string) (*models.Account, error) {
	if err := s.permissions.Require(actorID, orgID, PermissionManageAccounts); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	var count int64
	if err := s.db.Model(&models.Account{}).
		Where("org_id = ? AND name = ?", orgID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account with this name already exists")
	}

	account := &models.Account{
		OrgID:       orgID,
		Name:        name,
		Type:        accountType,
		Description: description,
		IsActive:    true,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetOrgAccounts returns the full active chart of accounts for an org.
// The suggestion engine always works from this complete set.
func (s *accountService) GetOrgAccounts(orgID string) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.
		Where("org_id = ? AND is_active = ?", orgID, true).
		Order("name ASC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// ListOrgAccounts retrieves a paginated list of accounts for an org.
func (s *accountService) ListOrgAccounts(orgID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{}).Where("org_id = ?", orgID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name ASC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID scoped to an org.
func (s *accountService) GetAccountByID(orgID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND org_id = ?", accountID, orgID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// defaultChart is the starter chart of accounts seeded for a new org.
var defaultChart = []models.Account{
	{Name: "Business Checking", Type: models.AccountTypeAsset},
	{Name: "Business Savings", Type: models.AccountTypeAsset},
	{Name: "Business Credit Card", Type: models.AccountTypeLiability},
	{Name: "Owner's Equity", Type: models.AccountTypeEquity},
	{Name: "Service Revenue", Type: models.AccountTypeIncome},
	{Name: "Meals & Entertainment", Type: models.AccountTypeExpense},
	{Name: "Office Supplies", Type: models.AccountTypeExpense},
	{Name: "Travel", Type: models.AccountTypeExpense},
	{Name: "Software & Subscriptions", Type: models.AccountTypeExpense},
	{Name: "Marketing", Type: models.AccountTypeExpense},
	{Name: "Professional Services", Type: models.AccountTypeExpense},
	{Name: "Rent", Type: models.AccountTypeExpense},
	{Name: "Utilities", Type: models.AccountTypeExpense},
	{Name: "Uncategorized Expense", Type: models.AccountTypeExpense},
}

// SeedDefaultAccounts creates the starter chart for a freshly created org.
func (s *accountService) SeedDefaultAccounts(orgID string) error {
	for _, tmpl := range defaultChart {
		account := models.Account{
			OrgID:    orgID,
			Name:     tmpl.Name,
			Type:     tmpl.Type,
			IsActive: true,
		}
		if err := s.db.Create(&account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
