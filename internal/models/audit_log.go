package models

// AuditLog records mutating engine operations for review and compliance.
type AuditLog struct {
	Base
	OrgID        string `gorm:"type:uuid;not null;index" json:"org_id"`
	// UserID is a user UUID or the internal system actor name.
	UserID       string `gorm:"not null" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"type:uuid" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
