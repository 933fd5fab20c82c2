// internal/services/verification_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/utils"
)

// VerificationService runs the admin-side approval workflow:
//
//	pending -> under_review -> approved | rejected
//
// Approved and rejected are terminal. Every transition is guarded by an
// expected-previous-status precondition on the database update, so two
// admins racing on the same company cannot double-process it.
type VerificationService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	notificationService *NotificationService
}

type AdminCompanyFilter struct {
	utils.PaginationParams
	Status  *models.CompanyStatus
	Country string
}

// Decision is the outcome returned to the admin after approve/reject.
type Decision struct {
	Company       *models.Company `json:"company"`
	PublicPageURL string          `json:"public_page_url,omitempty"`
}

func NewVerificationService(db *gorm.DB, cfg *config.Config, notificationService *NotificationService) *VerificationService {
	return &VerificationService{
		db:                  db,
		cfg:                 cfg,
		notificationService: notificationService,
	}
}

// applyApprove mutates the company in memory according to the approval rule:
// status becomes approved, any previous rejection reason is cleared, and the
// tracking identifier is minted only if none exists yet. Re-approving with an
// existing identifier must not regenerate it, or previously distributed
// public URLs would be orphaned.
func applyApprove(company *models.Company, mint func() (string, error)) error {
	if !company.Status.IsReviewable() {
		return ErrInvalidTransition
	}

	company.Status = models.CompanyStatusApproved
	company.RejectionReason = nil

	if company.TrackingID == nil {
		trackingID, err := mint()
		if err != nil {
			return fmt.Errorf("failed to generate tracking id: %w", err)
		}
		company.TrackingID = &trackingID
	}

	return nil
}

// applyReject mutates the company in memory according to the rejection rule.
// A blank or whitespace-only reason refuses the transition outright.
func applyReject(company *models.Company, reason string) error {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return ErrReasonRequired
	}
	if !company.Status.IsReviewable() {
		return ErrInvalidTransition
	}

	company.Status = models.CompanyStatusRejected
	company.RejectionReason = &trimmed
	return nil
}

// ListCompanies returns companies for the admin review queue.
func (s *VerificationService) ListCompanies(filter AdminCompanyFilter) ([]models.Company, int64, error) {
	query := s.db.Model(&models.Company{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "company_name", "country", "status", "views_count"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var companies []models.Company
	if err := query.Find(&companies).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch companies: %w", err)
	}

	return companies, total, nil
}

// GetReviewDetail loads the company together with its branding and uploaded
// documents for the admin review dialog.
func (s *VerificationService) GetReviewDetail(companyID uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := s.db.Preload("Branding").Preload("Documents").First(&company, "id = ?", companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &company, nil
}

// StartReview moves a pending company into under_review.
func (s *VerificationService) StartReview(companyID, adminID uuid.UUID) (*models.Company, error) {
	result := s.db.Model(&models.Company{}).
		Where("id = ? AND status = ?", companyID, models.CompanyStatusPending).
		Update("status", models.CompanyStatusUnderReview)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to start review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, s.transitionFailure(companyID)
	}

	company, err := s.GetReviewDetail(companyID)
	if err != nil {
		return nil, err
	}

	go s.auditTransition(adminID, company, models.CompanyStatusPending, "")

	return company, nil
}

// Approve transitions the company to approved, clears any rejection reason
// and mints the tracking identifier exactly once. On any persistence failure
// the stored record is left untouched and the error is surfaced to the admin
// as retryable.
func (s *VerificationService) Approve(companyID, adminID uuid.UUID) (*Decision, error) {
	var company models.Company
	var previous models.CompanyStatus

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&company, "id = ?", companyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		previous = company.Status
		if err := applyApprove(&company, utils.GenerateTrackingID); err != nil {
			return err
		}

		// The status list in the WHERE clause is the optimistic concurrency
		// check: a concurrent decision flips the row out of a reviewable
		// state and this update then matches nothing.
		result := tx.Model(&models.Company{}).
			Where("id = ? AND status IN ?", companyID, []models.CompanyStatus{models.CompanyStatusPending, models.CompanyStatusUnderReview}).
			Updates(map[string]interface{}{
				"status":           models.CompanyStatusApproved,
				"rejection_reason": nil,
				"tracking_id":      company.TrackingID,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to approve company: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The audit row only exists once the transition actually committed.
	go s.auditTransition(adminID, &company, previous, "")
	go s.notificationService.NotifyCompanyApproved(&company)

	return &Decision{
		Company:       &company,
		PublicPageURL: s.PublicPageURL(&company),
	}, nil
}

// Reject transitions the company to rejected, storing the mandatory reason.
func (s *VerificationService) Reject(companyID, adminID uuid.UUID, reason string) (*Decision, error) {
	var company models.Company
	var previous models.CompanyStatus

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&company, "id = ?", companyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		previous = company.Status
		if err := applyReject(&company, reason); err != nil {
			return err
		}

		result := tx.Model(&models.Company{}).
			Where("id = ? AND status IN ?", companyID, []models.CompanyStatus{models.CompanyStatusPending, models.CompanyStatusUnderReview}).
			Updates(map[string]interface{}{
				"status":           models.CompanyStatusRejected,
				"rejection_reason": company.RejectionReason,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to reject company: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.auditTransition(adminID, &company, previous, *company.RejectionReason)
	go s.notificationService.NotifyCompanyRejected(&company)

	return &Decision{Company: &company}, nil
}

// PublicPageURL derives the public badge page address from the tracking
// identifier.
func (s *VerificationService) PublicPageURL(company *models.Company) string {
	if company == nil || company.TrackingID == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s", s.cfg.Tracking.BadgeBaseURL, *company.TrackingID)
}

// transitionFailure distinguishes "row is gone" from "row was already
// decided" after a zero-row conditional update.
func (s *VerificationService) transitionFailure(companyID uuid.UUID) error {
	var count int64
	s.db.Model(&models.Company{}).Where("id = ?", companyID).Count(&count)
	if count == 0 {
		return ErrCompanyNotFound
	}
	return ErrInvalidTransition
}

func (s *VerificationService) auditTransition(adminID uuid.UUID, company *models.Company, previous models.CompanyStatus, reason string) {
	newValues := models.JSONB{"status": company.Status}
	if reason != "" {
		newValues["rejection_reason"] = reason
	}

	log := &models.AuditLog{
		UserID:       &adminID,
		Action:       "COMPANY_STATUS_TRANSITION",
		ResourceType: "company",
		ResourceID:   &company.ID,
		OldValues:    models.JSONB{"status": previous},
		NewValues:    newValues,
	}
	s.db.Create(log)
}
