// internal/models/company.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	BaseModel
	UserID              uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	CompanyName         string     `json:"company_name" gorm:"size:255;not null"`
	Email               string     `json:"email" gorm:"size:255;not null"`
	WebsiteURL          string     `json:"website_url" gorm:"size:500;not null"`
	Country             string     `json:"country" gorm:"size:100;not null"`
	PhoneNumber         string     `json:"phone_number" gorm:"size:50"`
	DateOfIncorporation *time.Time `json:"date_of_incorporation"`
	Description         string     `json:"description" gorm:"type:text"`
	TermsURL            string     `json:"terms_url" gorm:"size:500"`
	PrivacyURL          string     `json:"privacy_url" gorm:"size:500"`
	PlanType            PlanType   `json:"plan_type" gorm:"type:varchar(20);default:'free'"`

	// Verification lifecycle. Status and rejection reason are written by the
	// verification workflow only; the tracking id is minted exactly once at
	// first approval and never regenerated.
	Status          CompanyStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	RejectionReason *string       `json:"rejection_reason"`
	TrackingID      *string       `json:"tracking_id" gorm:"uniqueIndex;size:64"`

	// Tracking pipeline state, evolved independently of approval.
	ViewsCount               int64        `json:"views_count" gorm:"default:0"`
	ScriptInstalled          bool         `json:"script_installed" gorm:"default:false"`
	ScriptVerificationStatus ScriptStatus `json:"script_verification_status" gorm:"type:varchar(20);default:'not_installed'"`
	LastTrackingEvent        *time.Time   `json:"last_tracking_event"`

	// Relationships
	Branding  *CompanyBranding  `json:"branding,omitempty" gorm:"foreignKey:CompanyID"`
	Documents []CompanyDocument `json:"documents,omitempty" gorm:"foreignKey:CompanyID"`
}

func (c *Company) IsApproved() bool {
	return c.Status == CompanyStatusApproved
}

func (c *Company) HasActiveScript() bool {
	return c.ScriptVerificationStatus == ScriptStatusActive
}

type CompanyBranding struct {
	BaseModel
	CompanyID    uuid.UUID `json:"company_id" gorm:"type:uuid;uniqueIndex;not null"`
	LogoURL      string    `json:"logo_url" gorm:"size:500"`
	CoverURL     string    `json:"cover_url" gorm:"size:500"`
	PrimaryColor string    `json:"primary_color" gorm:"size:7;default:'#3b82f6'"`
	DisplayText  string    `json:"display_text" gorm:"size:255"`
}

type CompanyDocument struct {
	BaseModel
	CompanyID uuid.UUID `json:"company_id" gorm:"type:uuid;index;not null"`
	FileName  string    `json:"file_name" gorm:"size:255;not null"`
	FileURL   string    `json:"file_url" gorm:"size:500;not null"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type" gorm:"size:100"`
}
