// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCompany UserRole = "company"
)

type CompanyStatus string

const (
	CompanyStatusPending     CompanyStatus = "pending"
	CompanyStatusUnderReview CompanyStatus = "under_review"
	CompanyStatusApproved    CompanyStatus = "approved"
	CompanyStatusRejected    CompanyStatus = "rejected"
)

// IsReviewable reports whether an admin decision may still be taken from s.
// Approved and rejected are terminal; re-review is not supported.
func (s CompanyStatus) IsReviewable() bool {
	return s == CompanyStatusPending || s == CompanyStatusUnderReview
}

type ScriptStatus string

const (
	ScriptStatusNotInstalled ScriptStatus = "not_installed"
	ScriptStatusPending      ScriptStatus = "pending"
	ScriptStatusActive       ScriptStatus = "active"
	ScriptStatusError        ScriptStatus = "error"
)

type PlanType string

const (
	PlanTypeFree     PlanType = "free"
	PlanTypeStarter  PlanType = "starter"
	PlanTypeBusiness PlanType = "business"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

type NotificationType string

const (
	NotificationTypeCompanySubmitted NotificationType = "company_submitted"
	NotificationTypeCompanyApproved  NotificationType = "company_approved"
	NotificationTypeCompanyRejected  NotificationType = "company_rejected"
	NotificationTypeScriptActivated  NotificationType = "script_activated"
)
