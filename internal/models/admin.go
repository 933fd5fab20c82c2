// internal/models/admin.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type AdminSetting struct {
	BaseModel
	Category    string    `json:"category" gorm:"size:50;not null"`
	Key         string    `json:"key" gorm:"size:100;not null"`
	Value       JSONB     `json:"value" gorm:"type:jsonb"`
	DataType    string    `json:"data_type" gorm:"size:20"`
	Description string    `json:"description" gorm:"size:500"`
	UpdatedBy   uuid.UUID `json:"updated_by" gorm:"type:uuid"`
}

// AdminNotification feeds the admin updates view with verification
// lifecycle events.
type AdminNotification struct {
	BaseModel
	Type      NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Message   string           `json:"message" gorm:"type:text"`
	CompanyID *uuid.UUID       `json:"company_id" gorm:"type:uuid;index"`
	ReadAt    *time.Time       `json:"read_at"`
}

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:50"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid"`
	OldValues    JSONB      `json:"old_values" gorm:"type:jsonb"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:1000"`
}
