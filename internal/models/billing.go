// internal/models/billing.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Plan rows back the billing page, which is a display-only view; plan and
// invoice computation happens in the payment provider.
type Plan struct {
	BaseModel
	Name      string         `json:"name" gorm:"size:100;not null"`
	PlanType  PlanType       `json:"plan_type" gorm:"type:varchar(20);uniqueIndex;not null"`
	PriceEUR  float64        `json:"price_eur" gorm:"not null"`
	ViewLimit int64          `json:"view_limit" gorm:"not null"`
	Features  pq.StringArray `json:"features" gorm:"type:text[]"`
	Active    bool           `json:"active" gorm:"default:true"`
}

type CompanySubscription struct {
	BaseModel
	CompanyID        uuid.UUID          `json:"company_id" gorm:"type:uuid;uniqueIndex;not null"`
	PlanID           uuid.UUID          `json:"plan_id" gorm:"type:uuid;not null"`
	Status           SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	StripeCustomerID string             `json:"-" gorm:"size:100"`
	CurrentPeriodEnd *time.Time         `json:"current_period_end"`

	Plan *Plan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
}
