package models

// Org is a tenant: one set of books. Accounts, transactions and entries
// are all scoped to an org.
type Org struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Role is a member's role within an org, mapped to permissions by the
// permission service.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleBookkeeper Role = "bookkeeper"
	RoleViewer     Role = "viewer"
)

// Membership links a user to an org with a role.
type Membership struct {
	Base
	OrgID  string `gorm:"type:uuid;not null;uniqueIndex:idx_membership_org_user" json:"org_id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_membership_org_user" json:"user_id"`
	Role   Role   `gorm:"not null" json:"role"`
}
