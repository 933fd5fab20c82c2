// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/models"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalCompanies        int64   `json:"total_companies"`
	PendingReview         int64   `json:"pending_review"`
	ApprovedCompanies     int64   `json:"approved_companies"`
	RejectedCompanies     int64   `json:"rejected_companies"`
	ActiveScripts         int64   `json:"active_scripts"`
	TotalViews            int64   `json:"total_views"`
	EventsToday           int64   `json:"events_today"`
	NewCompaniesThisMonth int64   `json:"new_companies_this_month"`
	CompanyGrowth         float64 `json:"company_growth"`
}

type PlatformAnalytics struct {
	EventsPerDay []DailyEventCount `json:"events_per_day"`
	TopCompanies []models.Company  `json:"top_companies"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Dashboard statistics
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	s.db.Model(&models.Company{}).Count(&stats.TotalCompanies)
	s.db.Model(&models.Company{}).
		Where("status IN ?", []models.CompanyStatus{models.CompanyStatusPending, models.CompanyStatusUnderReview}).
		Count(&stats.PendingReview)
	s.db.Model(&models.Company{}).Where("status = ?", models.CompanyStatusApproved).Count(&stats.ApprovedCompanies)
	s.db.Model(&models.Company{}).Where("status = ?", models.CompanyStatusRejected).Count(&stats.RejectedCompanies)
	s.db.Model(&models.Company{}).
		Where("script_verification_status = ?", models.ScriptStatusActive).
		Count(&stats.ActiveScripts)

	s.db.Model(&models.Company{}).Select("COALESCE(SUM(views_count), 0)").Scan(&stats.TotalViews)
	s.db.Model(&models.TrackingEvent{}).Where("created_at >= ?", dayStart).Count(&stats.EventsToday)
	s.db.Model(&models.Company{}).Where("created_at >= ?", monthStart).Count(&stats.NewCompaniesThisMonth)

	var lastMonthCompanies int64
	s.db.Model(&models.Company{}).
		Where("created_at >= ? AND created_at < ?", lastMonthStart, monthStart).
		Count(&lastMonthCompanies)

	if lastMonthCompanies > 0 {
		stats.CompanyGrowth = float64(stats.NewCompaniesThisMonth-lastMonthCompanies) / float64(lastMonthCompanies) * 100
	}

	return stats, nil
}

// GetAnalytics returns platform-wide tracking aggregates for the admin
// analytics view.
func (s *AdminService) GetAnalytics(days int) (*PlatformAnalytics, error) {
	if days <= 0 || days > 90 {
		days = 30
	}

	analytics := &PlatformAnalytics{}

	err := s.db.Model(&models.TrackingEvent{}).
		Select("date_trunc('day', created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", time.Now().AddDate(0, 0, -days)).
		Group("day").
		Order("day ASC").
		Scan(&analytics.EventsPerDay).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}

	err = s.db.Model(&models.Company{}).
		Where("status = ?", models.CompanyStatusApproved).
		Order("views_count DESC").
		Limit(10).
		Find(&analytics.TopCompanies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top companies: %w", err)
	}

	return analytics, nil
}

func (s *AdminService) GetNotifications(limit int, unreadOnly bool) ([]models.AdminNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.Model(&models.AdminNotification{}).Order("created_at DESC").Limit(limit)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var notifications []models.AdminNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

func (s *AdminService) MarkNotificationRead(notificationID uuid.UUID) error {
	result := s.db.Model(&models.AdminNotification{}).
		Where("id = ? AND read_at IS NULL", notificationID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	return nil
}

// Settings management
func (s *AdminService) GetSettings() (map[string]models.AdminSetting, error) {
	var settings []models.AdminSetting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	settingsMap := make(map[string]models.AdminSetting)
	for _, setting := range settings {
		key := fmt.Sprintf("%s.%s", setting.Category, setting.Key)
		settingsMap[key] = setting
	}

	return settingsMap, nil
}

func (s *AdminService) UpdateSetting(category, key string, value interface{}, dataType string, adminID uuid.UUID) error {
	var setting models.AdminSetting
	err := s.db.Where("category = ? AND key = ?", category, key).First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.AdminSetting{
			Category:  category,
			Key:       key,
			Value:     models.JSONB{"value": value},
			DataType:  dataType,
			UpdatedBy: adminID,
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to create setting: %w", err)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	setting.Value = models.JSONB{"value": value}
	setting.DataType = dataType
	setting.UpdatedBy = adminID

	if err := s.db.Save(&setting).Error; err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	return nil
}
