package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
)

// orgService manages organizations and their memberships.
type orgService struct {
	db       *gorm.DB
	accounts AccountServicer
}

// NewOrgService creates a new OrgServicer.
func NewOrgService(db *gorm.DB, accounts AccountServicer) OrgServicer {
	return &orgService{db: db, accounts: accounts}
}

// CreateOrg creates an org, makes the creator its owner, and seeds the
// starter chart of accounts.
func (s *orgService) CreateOrg(ownerID, name string) (*models.Org, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "organization name is required")
	}

	org := &models.Org{Name: name, IsActive: true}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		membership := &models.Membership{
			OrgID:  org.ID,
			UserID: ownerID,
			Role:   models.RoleOwner,
		}
		return tx.Create(membership).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.accounts.SeedDefaultAccounts(org.ID); err != nil {
		return nil, err
	}
	return org, nil
}

// GetOrgByID retrieves an org by ID.
func (s *orgService) GetOrgByID(orgID string) (*models.Org, error) {
	var org models.Org
	if err := s.db.First(&org, "id = ?", orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrgNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &org, nil
}

// AddMember adds a user to an org with a role. Only owners may manage
// membership.
func (s *orgService) AddMember(actorID, orgID, userID string, role models.Role) (*models.Membership, error) {
	var actor models.Membership
	if err := s.db.Where("user_id = ? AND org_id = ?", actorID, orgID).First(&actor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotOrgMember
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if actor.Role != models.RoleOwner {
		return nil, apperrors.ErrForbidden
	}

	var count int64
	if err := s.db.Model(&models.Membership{}).
		Where("user_id = ? AND org_id = ?", userID, orgID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user is already a member of this organization")
	}

	membership := &models.Membership{OrgID: orgID, UserID: userID, Role: role}
	if err := s.db.Create(membership).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return membership, nil
}
