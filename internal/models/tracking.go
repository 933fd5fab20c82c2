// internal/models/tracking.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackingEvent is an append-only record of a page view reported by the
// embedded badge script. The raw client IP is never stored, only its hash.
type TrackingEvent struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `json:"company_id" gorm:"type:uuid;index;not null"`
	EventType  string    `json:"event_type" gorm:"size:50;not null"`
	PageURL    string    `json:"page_url" gorm:"size:2000"`
	Referrer   string    `json:"referrer" gorm:"size:2000"`
	UserAgent  string    `json:"user_agent" gorm:"size:1000"`
	IPHash     string    `json:"-" gorm:"size:64"`
	Browser    string    `json:"browser" gorm:"size:50"`
	DeviceType string    `json:"device_type" gorm:"size:20"`
	Country    string    `json:"country" gorm:"size:100"`
	CreatedAt  time.Time `json:"created_at"`
}

const EventTypePageView = "page_view"
