package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
)

// businessProfileService stores the per-org context that biases the
// suggestion engine.
type businessProfileService struct {
	db          *gorm.DB
	permissions PermissionServicer
}

// NewBusinessProfileService creates a new BusinessProfileServicer.
func NewBusinessProfileService(db *gorm.DB, permissions PermissionServicer) BusinessProfileServicer {
	return &businessProfileService{db: db, permissions: permissions}
}

// GetProfile returns the org's profile, or nil when none has been set.
// An absent profile is not an error: the engine runs unbiased without one.
func (s *businessProfileService) GetProfile(orgID string) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	if err := s.db.Where("org_id = ?", orgID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpsertProfile creates or replaces the org's business profile.
func (s *businessProfileService) UpsertProfile(actorID, orgID string, profile models.BusinessProfile) (*models.BusinessProfile, error) {
	if err := s.permissions.Require(actorID, orgID, PermissionManageAccounts); err != nil {
		return nil, err
	}

	if profile.AccountingMethod == "" {
		profile.AccountingMethod = models.AccountingMethodCash
	}

	existing, err := s.GetProfile(orgID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		profile.OrgID = orgID
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &profile, nil
	}

	updates := map[string]interface{}{
		"business_type":     profile.BusinessType,
		"entity_type":       profile.EntityType,
		"business_category": profile.BusinessCategory,
		"naics_code":        profile.NAICSCode,
		"accounting_method": profile.AccountingMethod,
	}
	if err := s.db.Model(existing).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetProfile(orgID)
}
