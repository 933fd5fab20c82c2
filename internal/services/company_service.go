// internal/services/company_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/utils"
)

// CompanyService is the per-user accessor for the one company record owned
// by the signed-in user.
type CompanyService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	notificationService *NotificationService
}

type OnboardCompanyRequest struct {
	CompanyName         string `json:"company_name" validate:"required,max=255"`
	Email               string `json:"email" validate:"required,email"`
	WebsiteURL          string `json:"website_url" validate:"required,url"`
	Country             string `json:"country" validate:"required,max=100"`
	PhoneNumber         string `json:"phone_number,omitempty" validate:"omitempty,max=50"`
	DateOfIncorporation string `json:"date_of_incorporation,omitempty"`
	Description         string `json:"description,omitempty"`
	TermsURL            string `json:"terms_url,omitempty" validate:"omitempty,url"`
	PrivacyURL          string `json:"privacy_url,omitempty" validate:"omitempty,url"`
}

type UpdateCompanyRequest struct {
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=255"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	WebsiteURL  *string `json:"website_url,omitempty" validate:"omitempty,url"`
	Country     *string `json:"country,omitempty" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
	TermsURL    *string `json:"terms_url,omitempty" validate:"omitempty,url"`
	PrivacyURL  *string `json:"privacy_url,omitempty" validate:"omitempty,url"`
}

type BrandingRequest struct {
	LogoURL      string `json:"logo_url,omitempty" validate:"omitempty,url"`
	CoverURL     string `json:"cover_url,omitempty" validate:"omitempty,url"`
	PrimaryColor string `json:"primary_color" validate:"required,hex_color"`
	DisplayText  string `json:"display_text,omitempty" validate:"omitempty,max=255"`
}

// CompanyStatusFlags are the derived predicates consumed by the route guard
// and the company dashboard.
type CompanyStatusFlags struct {
	Onboarded       bool                 `json:"onboarded"`
	Status          models.CompanyStatus `json:"status,omitempty"`
	IsApproved      bool                 `json:"is_approved"`
	ScriptInstalled bool                 `json:"script_installed"`
	ScriptStatus    models.ScriptStatus  `json:"script_status,omitempty"`
	RejectionReason *string              `json:"rejection_reason,omitempty"`
}

type BadgeSnippet struct {
	ScriptTag     string `json:"script_tag"`
	PublicPageURL string `json:"public_page_url"`
	TrackingID    string `json:"tracking_id"`
}

func NewCompanyService(db *gorm.DB, cfg *config.Config, notificationService *NotificationService) *CompanyService {
	return &CompanyService{
		db:                  db,
		cfg:                 cfg,
		notificationService: notificationService,
	}
}

// Create registers the company for the user with the pending status. One
// company per user; a second onboarding attempt is refused.
func (s *CompanyService) Create(userID uuid.UUID, req *OnboardCompanyRequest) (*models.Company, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCompanyExists
	}

	company := &models.Company{
		UserID:                   userID,
		CompanyName:              req.CompanyName,
		Email:                    req.Email,
		WebsiteURL:               req.WebsiteURL,
		Country:                  req.Country,
		PhoneNumber:              req.PhoneNumber,
		Description:              req.Description,
		TermsURL:                 req.TermsURL,
		PrivacyURL:               req.PrivacyURL,
		PlanType:                 models.PlanTypeFree,
		Status:                   models.CompanyStatusPending,
		ScriptVerificationStatus: models.ScriptStatusNotInstalled,
	}

	if req.DateOfIncorporation != "" {
		if t, err := time.Parse("2006-01-02", req.DateOfIncorporation); err == nil {
			company.DateOfIncorporation = &t
		}
	}

	if err := s.db.Create(company).Error; err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	go s.notificationService.NotifyCompanySubmitted(company)

	return company, nil
}

// GetByUserID returns the owned company, or nil when the user has not
// onboarded yet. An absent record is an expected state, not an error.
func (s *CompanyService) GetByUserID(userID uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := s.db.Preload("Branding").Where("user_id = ?", userID).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company: %w", err)
	}
	return &company, nil
}

// Update writes a partial profile update to the owned company. The profile
// locks once the company is approved; verification fields are never touched
// here.
func (s *CompanyService) Update(userID uuid.UUID, req *UpdateCompanyRequest) (*models.Company, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	company, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNoCompany
	}
	if company.Status == models.CompanyStatusApproved {
		return nil, ErrProfileLocked
	}

	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.WebsiteURL != nil {
		updates["website_url"] = *req.WebsiteURL
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.TermsURL != nil {
		updates["terms_url"] = *req.TermsURL
	}
	if req.PrivacyURL != nil {
		updates["privacy_url"] = *req.PrivacyURL
	}

	if len(updates) == 0 {
		return company, nil
	}

	if err := s.db.Model(company).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return company, nil
}

// StatusFlags derives the guard predicates for the user's company. A user
// without a company gets the zero flags with Onboarded=false.
func (s *CompanyService) StatusFlags(userID uuid.UUID) (*CompanyStatusFlags, error) {
	company, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return &CompanyStatusFlags{Onboarded: false}, nil
	}

	return &CompanyStatusFlags{
		Onboarded:       true,
		Status:          company.Status,
		IsApproved:      company.IsApproved(),
		ScriptInstalled: company.ScriptInstalled,
		ScriptStatus:    company.ScriptVerificationStatus,
		RejectionReason: company.RejectionReason,
	}, nil
}

func (s *CompanyService) SetBranding(userID uuid.UUID, req *BrandingRequest) (*models.CompanyBranding, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	company, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNoCompany
	}

	branding := &models.CompanyBranding{CompanyID: company.ID}
	if err := s.db.Where("company_id = ?", company.ID).FirstOrCreate(branding).Error; err != nil {
		return nil, fmt.Errorf("failed to load branding: %w", err)
	}

	branding.LogoURL = req.LogoURL
	branding.CoverURL = req.CoverURL
	branding.PrimaryColor = req.PrimaryColor
	branding.DisplayText = req.DisplayText

	if err := s.db.Save(branding).Error; err != nil {
		return nil, fmt.Errorf("failed to save branding: %w", err)
	}

	return branding, nil
}

func (s *CompanyService) AddDocument(userID uuid.UUID, doc *models.CompanyDocument) error {
	company, err := s.GetByUserID(userID)
	if err != nil {
		return err
	}
	if company == nil {
		return ErrNoCompany
	}

	doc.CompanyID = company.ID
	if err := s.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Snippet builds the embed code and the public badge page URL for an
// approved company. Both are derived from the tracking identifier minted at
// approval.
func (s *CompanyService) Snippet(company *models.Company) (*BadgeSnippet, error) {
	if company == nil {
		return nil, ErrNoCompany
	}
	if !company.IsApproved() || company.TrackingID == nil {
		return nil, ErrNotApproved
	}

	trackingID := *company.TrackingID
	return &BadgeSnippet{
		ScriptTag:     fmt.Sprintf(`<script src="%s" data-id="%s"></script>`, s.cfg.Tracking.ScriptURL, trackingID),
		PublicPageURL: fmt.Sprintf("%s/%s", s.cfg.Tracking.BadgeBaseURL, trackingID),
		TrackingID:    trackingID,
	}, nil
}
