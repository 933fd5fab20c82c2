// internal/services/billing_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/invoice"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/models"
)

// BillingService exposes the read side of billing: the plan catalog,
// the company's current subscription and its Stripe invoice history.
// Checkout and plan changes are handled outside this service.
type BillingService struct {
	db     *gorm.DB
	config *config.Config
}

type SubscriptionSummary struct {
	Plan             *models.Plan              `json:"plan"`
	Status           models.SubscriptionStatus `json:"status"`
	CurrentPeriodEnd *time.Time                `json:"current_period_end,omitempty"`
	ViewsUsed        int64                     `json:"views_used"`
	ViewLimit        int64                     `json:"view_limit"`
}

type InvoiceSummary struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	AmountDue int64     `json:"amount_due"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	PaidAt    time.Time `json:"paid_at"`
	PDFURL    string    `json:"pdf_url,omitempty"`
}

func NewBillingService(db *gorm.DB, config *config.Config) *BillingService {
	if config.Billing.StripeSecretKey != "" {
		stripe.Key = config.Billing.StripeSecretKey
	}
	return &BillingService{db: db, config: config}
}

// Plans returns the active plan catalog ordered by price.
func (s *BillingService) Plans() ([]models.Plan, error) {
	var plans []models.Plan
	if err := s.db.Where("active = ?", true).Order("price_eur ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// SubscriptionForCompany resolves the company's subscription. Companies
// without a subscription row are reported on the free plan.
func (s *BillingService) SubscriptionForCompany(companyID uuid.UUID) (*SubscriptionSummary, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	var sub models.CompanySubscription
	err := s.db.Preload("Plan").Where("company_id = ?", companyID).First(&sub).Error
	if err == nil && sub.Plan != nil {
		return &SubscriptionSummary{
			Plan:             sub.Plan,
			Status:           sub.Status,
			CurrentPeriodEnd: sub.CurrentPeriodEnd,
			ViewsUsed:        company.ViewsCount,
			ViewLimit:        sub.Plan.ViewLimit,
		}, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	var freePlan models.Plan
	if err := s.db.Where("plan_type = ?", models.PlanTypeFree).First(&freePlan).Error; err != nil {
		return nil, err
	}
	return &SubscriptionSummary{
		Plan:      &freePlan,
		Status:    models.SubscriptionStatusActive,
		ViewsUsed: company.ViewsCount,
		ViewLimit: freePlan.ViewLimit,
	}, nil
}

// Invoices lists the company's Stripe invoices, newest first. Companies
// without a Stripe customer, or deployments without a Stripe key, get an
// empty history rather than an error.
func (s *BillingService) Invoices(companyID uuid.UUID, limit int) ([]InvoiceSummary, error) {
	if s.config.Billing.StripeSecretKey == "" {
		return []InvoiceSummary{}, nil
	}

	var sub models.CompanySubscription
	err := s.db.Where("company_id = ?", companyID).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []InvoiceSummary{}, nil
		}
		return nil, err
	}
	if sub.StripeCustomerID == "" {
		return []InvoiceSummary{}, nil
	}

	if limit <= 0 || limit > 50 {
		limit = 12
	}

	params := &stripe.InvoiceListParams{
		Customer: stripe.String(sub.StripeCustomerID),
	}
	params.Limit = stripe.Int64(int64(limit))

	invoices := make([]InvoiceSummary, 0, limit)
	iter := invoice.List(params)
	for iter.Next() {
		inv := iter.Invoice()
		summary := InvoiceSummary{
			ID:        inv.ID,
			Number:    inv.Number,
			AmountDue: inv.AmountDue,
			Currency:  string(inv.Currency),
			Status:    string(inv.Status),
		}
		if inv.StatusTransitions != nil && inv.StatusTransitions.PaidAt > 0 {
			summary.PaidAt = time.Unix(inv.StatusTransitions.PaidAt, 0)
		}
		if inv.InvoicePDF != "" {
			summary.PDFURL = inv.InvoicePDF
		}
		invoices = append(invoices, summary)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}
