// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// gen_random_uuid needs pgcrypto on Postgres < 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Company{},
		&models.CompanyBranding{},
		&models.CompanyDocument{},
		&models.TrackingEvent{},
		&models.AdminSetting{},
		&models.AdminNotification{},
		&models.AuditLog{},
		&models.Plan{},
		&models.CompanySubscription{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Company indexes
		"CREATE INDEX IF NOT EXISTS idx_companies_status ON companies(status)",
		"CREATE INDEX IF NOT EXISTS idx_companies_country ON companies(country)",
		"CREATE INDEX IF NOT EXISTS idx_companies_created_at ON companies(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_companies_script_status ON companies(script_verification_status)",

		// Tracking event indexes
		"CREATE INDEX IF NOT EXISTS idx_tracking_events_company_created ON tracking_events(company_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_tracking_events_created_at ON tracking_events(created_at DESC)",

		// Admin indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_admin_notifications_read ON admin_notifications(read_at, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_admin_settings_category ON admin_settings(category, key)",

		// Review queue text search
		"CREATE INDEX IF NOT EXISTS idx_companies_search ON companies USING GIN(to_tsvector('simple', company_name || ' ' || email))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData creates the plan catalog and default settings on first
// boot. The reserved admin account is recognized by email at role
// resolution time, so no admin user row is seeded here.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	defaultPlans := []models.Plan{
		{
			Name:      "Free",
			PlanType:  models.PlanTypeFree,
			PriceEUR:  0,
			ViewLimit: 1000,
			Features:  []string{"verification_badge", "public_page"},
		},
		{
			Name:      "Starter",
			PlanType:  models.PlanTypeStarter,
			PriceEUR:  29,
			ViewLimit: 50000,
			Features:  []string{"verification_badge", "public_page", "analytics", "custom_branding"},
		},
		{
			Name:      "Business",
			PlanType:  models.PlanTypeBusiness,
			PriceEUR:  99,
			ViewLimit: 500000,
			Features:  []string{"verification_badge", "public_page", "analytics", "custom_branding", "priority_review"},
		},
	}

	for _, plan := range defaultPlans {
		var count int64
		db.Model(&models.Plan{}).Where("plan_type = ?", plan.PlanType).Count(&count)
		if count == 0 {
			if err := db.Create(&plan).Error; err != nil {
				return fmt.Errorf("failed to seed plan %s: %w", plan.PlanType, err)
			}
		}
	}

	defaultSettings := []models.AdminSetting{
		{
			Category:    "general",
			Key:         "platform_name",
			Value:       models.JSONB{"value": "Welo"},
			DataType:    "string",
			Description: "Platform name displayed to users",
		},
		{
			Category:    "verification",
			Key:         "auto_start_review",
			Value:       models.JSONB{"value": false},
			DataType:    "boolean",
			Description: "Automatically move new submissions into review",
		},
		{
			Category:    "verification",
			Key:         "require_documents",
			Value:       models.JSONB{"value": false},
			DataType:    "boolean",
			Description: "Require at least one uploaded document before approval",
		},
		{
			Category:    "tracking",
			Key:         "verification_window_minutes",
			Value:       models.JSONB{"value": 15},
			DataType:    "integer",
			Description: "How recent the last badge event must be to pass verification",
		},
		{
			Category:    "content",
			Key:         "max_file_size",
			Value:       models.JSONB{"value": 10},
			DataType:    "integer",
			Description: "Maximum file size in MB for document uploads",
		},
	}

	for _, setting := range defaultSettings {
		var count int64
		db.Model(&models.AdminSetting{}).Where("category = ? AND key = ?", setting.Category, setting.Key).Count(&count)
		if count == 0 {
			if err := db.Create(&setting).Error; err != nil {
				log.Printf("Warning: Failed to create setting %s.%s: %v", setting.Category, setting.Key, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
