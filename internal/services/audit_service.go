package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"tallybook/internal/logger"
	"tallybook/internal/models"
)

// auditService records mutating operations. Logging is fire-and-forget:
// an audit write failure is logged but never fails the operation it
// describes.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log implements AuditServicer.
func (s *auditService) Log(orgID, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	entry := models.AuditLog{
		OrgID:        orgID,
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if changes != nil {
		if data, err := json.Marshal(changes); err == nil {
			entry.Changes = string(data)
		}
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("failed to write audit log",
			"action", action,
			"resource_type", resourceType,
			"error", err.Error())
	}
}
