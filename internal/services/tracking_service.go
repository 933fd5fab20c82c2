// internal/services/tracking_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/utils"
)

// TrackingService binds companies to their tracking identifier: it ingests
// page-view events reported by the badge script and verifies that the script
// is actually installed on the company's site. Script state evolves
// independently of the approval status.
type TrackingService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	notificationService *NotificationService
}

// ProcessEventInput is the beacon payload as the deployed badge script
// sends it, hence the camelCase field names.
type ProcessEventInput struct {
	TrackingID string `json:"trackingId" validate:"required"`
	PageURL    string `json:"pageUrl" validate:"required"`
	Referrer   string `json:"referrer,omitempty"`
	UserAgent  string `json:"userAgent,omitempty"`
	IPAddress  string `json:"-"`
}

type ProcessEventResult struct {
	CompanyID  uuid.UUID `json:"company_id"`
	ViewsCount int64     `json:"views_count"`
}

type VerificationResult struct {
	Verified     bool                `json:"verified"`
	ScriptStatus models.ScriptStatus `json:"script_status"`
	LastEvent    *time.Time          `json:"last_event,omitempty"`
}

// PublicBadgeProfile is what the public verification page shows for an
// approved company.
type PublicBadgeProfile struct {
	CompanyName string                  `json:"company_name"`
	WebsiteURL  string                  `json:"website_url"`
	Country     string                  `json:"country"`
	Description string                  `json:"description,omitempty"`
	Verified    bool                    `json:"verified"`
	ViewsCount  int64                   `json:"views_count"`
	Branding    *models.CompanyBranding `json:"branding,omitempty"`
}

type DailyEventCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

func NewTrackingService(db *gorm.DB, cfg *config.Config, notificationService *NotificationService) *TrackingService {
	return &TrackingService{
		db:                  db,
		cfg:                 cfg,
		notificationService: notificationService,
	}
}

// ProcessEvent records a page view for the company owning the tracking
// identifier, bumps the view counter and marks the script active. The view
// counter only ever increments.
func (s *TrackingService) ProcessEvent(input *ProcessEventInput) (*ProcessEventResult, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var company models.Company
	if err := s.db.Where("tracking_id = ?", input.TrackingID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownTrackingID
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	event := &models.TrackingEvent{
		CompanyID:  company.ID,
		EventType:  models.EventTypePageView,
		PageURL:    input.PageURL,
		Referrer:   input.Referrer,
		UserAgent:  input.UserAgent,
		Browser:    browserFromUserAgent(input.UserAgent),
		DeviceType: deviceTypeFromUserAgent(input.UserAgent),
	}
	if input.IPAddress != "" {
		event.IPHash = utils.HashString(input.IPAddress)
	}

	wasActive := company.HasActiveScript()

	var viewsCount int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to store tracking event: %w", err)
		}

		if err := tx.Model(&models.Company{}).
			Where("id = ?", company.ID).
			Updates(map[string]interface{}{
				"views_count":                gorm.Expr("views_count + 1"),
				"script_installed":           true,
				"script_verification_status": models.ScriptStatusActive,
				"last_tracking_event":        now,
			}).Error; err != nil {
			return err
		}

		// Re-read the counter after the increment so concurrent beacons
		// each report the value they actually landed on.
		return tx.Model(&models.Company{}).
			Select("views_count").
			Where("id = ?", company.ID).
			Scan(&viewsCount).Error
	})
	if err != nil {
		return nil, err
	}

	if !wasActive {
		go s.notificationService.NotifyScriptActivated(&company)
	}

	return &ProcessEventResult{
		CompanyID:  company.ID,
		ViewsCount: viewsCount,
	}, nil
}

// VerifyInstallation checks whether the badge script has called home
// recently and updates the company's script state accordingly.
func (s *TrackingService) VerifyInstallation(trackingID string) (*VerificationResult, error) {
	var company models.Company
	if err := s.db.Where("tracking_id = ?", trackingID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownTrackingID
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	window := time.Duration(s.cfg.Tracking.VerificationWindowMinutes) * time.Minute
	status, verified := installationStatus(company.LastTrackingEvent, time.Now(), window)

	updates := map[string]interface{}{
		"script_verification_status": status,
	}
	if verified {
		updates["script_installed"] = true
	}
	if err := s.db.Model(&company).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update script status: %w", err)
	}

	return &VerificationResult{
		Verified:     verified,
		ScriptStatus: status,
		LastEvent:    company.LastTrackingEvent,
	}, nil
}

// installationStatus decides the script state from the freshness of the last
// reported event: never seen means the check stays pending, a recent event
// means active, and a stale one means the script stopped calling home.
func installationStatus(lastEvent *time.Time, now time.Time, window time.Duration) (models.ScriptStatus, bool) {
	if lastEvent == nil {
		return models.ScriptStatusPending, false
	}
	if now.Sub(*lastEvent) <= window {
		return models.ScriptStatusActive, true
	}
	return models.ScriptStatusError, false
}

// PublicBadge resolves the public verification page for a tracking
// identifier. Only approved companies are exposed; everything else is
// reported as an unknown identifier so the page leaks nothing about
// pending or rejected applications.
func (s *TrackingService) PublicBadge(trackingID string) (*PublicBadgeProfile, error) {
	var company models.Company
	err := s.db.Preload("Branding").Where("tracking_id = ?", trackingID).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownTrackingID
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !company.IsApproved() {
		return nil, ErrUnknownTrackingID
	}

	profile := &PublicBadgeProfile{
		CompanyName: company.CompanyName,
		WebsiteURL:  company.WebsiteURL,
		Country:     company.Country,
		Description: company.Description,
		Verified:    true,
		ViewsCount:  company.ViewsCount,
		Branding:    company.Branding,
	}
	return profile, nil
}

func (s *TrackingService) RecentEvents(companyID uuid.UUID, limit int) ([]models.TrackingEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var events []models.TrackingEvent
	err := s.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

func (s *TrackingService) EventsPerDay(companyID uuid.UUID, days int) ([]DailyEventCount, error) {
	if days <= 0 || days > 90 {
		days = 30
	}

	var counts []DailyEventCount
	err := s.db.Model(&models.TrackingEvent{}).
		Select("date_trunc('day', created_at) AS day, COUNT(*) AS count").
		Where("company_id = ? AND created_at >= ?", companyID, time.Now().AddDate(0, 0, -days)).
		Group("day").
		Order("day ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}
	return counts, nil
}

// browserFromUserAgent is a coarse classifier, sufficient for the analytics
// charts; anything unrecognized lands in "other".
func browserFromUserAgent(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case ua == "":
		return ""
	case strings.Contains(ua, "edg/"):
		return "edge"
	case strings.Contains(ua, "opr/") || strings.Contains(ua, "opera"):
		return "opera"
	case strings.Contains(ua, "chrome"):
		return "chrome"
	case strings.Contains(ua, "safari"):
		return "safari"
	case strings.Contains(ua, "firefox"):
		return "firefox"
	default:
		return "other"
	}
}

func deviceTypeFromUserAgent(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case ua == "":
		return ""
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return "tablet"
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone"):
		return "mobile"
	default:
		return "desktop"
	}
}
