package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
)

// rolePermissions maps each org role to the operations it may perform.
// Owners hold everything; bookkeepers run the review flow; viewers only
// read.
var rolePermissions = map[models.Role][]Permission{
	models.RoleOwner: {
		PermissionEditTransactions,
		PermissionApproveEntries,
		PermissionViewLedger,
		PermissionManageAccounts,
	},
	models.RoleBookkeeper: {
		PermissionEditTransactions,
		PermissionApproveEntries,
		PermissionViewLedger,
	},
	models.RoleViewer: {
		PermissionViewLedger,
	},
}

// SystemActor is the internal identity used by the pipeline worker and
// bank feed ingestion. It is not a valid user ID, so it can never arrive
// from a JWT.
const SystemActor = "system"

// permissionService resolves a user's role within an org and gates
// operations on it.
type permissionService struct {
	db *gorm.DB
}

// NewPermissionService creates a new PermissionServicer.
func NewPermissionService(db *gorm.DB) PermissionServicer {
	return &permissionService{db: db}
}

// GetRole returns the user's role in the org, or ErrNotOrgMember.
func (s *permissionService) GetRole(userID, orgID string) (models.Role, error) {
	var membership models.Membership
	if err := s.db.Where("user_id = ? AND org_id = ?", userID, orgID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotOrgMember
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return membership.Role, nil
}

// Require checks that the user holds the permission within the org.
// The membership check runs before the permission check so a non-member
// always gets ErrNotOrgMember rather than ErrForbidden.
func (s *permissionService) Require(userID, orgID string, permission Permission) error {
	if userID == SystemActor {
		return nil
	}
	role, err := s.GetRole(userID, orgID)
	if err != nil {
		return err
	}
	for _, p := range rolePermissions[role] {
		if p == permission {
			return nil
		}
	}
	return apperrors.ErrForbidden
}
