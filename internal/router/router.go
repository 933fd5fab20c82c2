// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/handlers"
	"github.com/welolabs/welo-backend/internal/middleware"
	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/services"
	"github.com/welolabs/welo-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Storage service unavailable, uploads disabled")
		storageService, _ = services.NewStorageService(&config.Config{})
	}
	roleService := services.NewRoleService(db, cfg)

	authService := services.NewAuthService(db, cfg, roleService)
	companyService := services.NewCompanyService(db, cfg, notificationService)
	verificationService := services.NewVerificationService(db, cfg, notificationService)
	trackingService := services.NewTrackingService(db, cfg, notificationService)
	adminService := services.NewAdminService(db)
	billingService := services.NewBillingService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, roleService)
	companyHandler := handlers.NewCompanyHandler(companyService, trackingService, storageService)
	adminHandler := handlers.NewAdminHandler(verificationService, adminService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	billingHandler := handlers.NewBillingHandler(billingService, companyService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Public tracking endpoints, hit from company websites
	r.POST("/track/event", middleware.TrackRateLimit(), trackingHandler.TrackEvent)
	r.GET("/badge/:trackingID", trackingHandler.BadgePage)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/oauth/:provider", authHandler.OAuthStart)
			auth.POST("/oauth/:provider/callback", authHandler.OAuthCallback)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Company routes (the signed-in user's own company)
		companies := v1.Group("/companies")
		companies.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCompany))
		{
			companies.POST("", companyHandler.Onboard)
			companies.GET("/me", companyHandler.GetMine)
			companies.PUT("/me", companyHandler.UpdateMine)
			companies.GET("/me/status", companyHandler.GetStatus)
			companies.PUT("/me/branding", companyHandler.SetBranding)
			companies.POST("/me/documents", middleware.UploadRateLimit(), companyHandler.UploadDocument)

			// Approval-gated surfaces
			approved := companies.Group("")
			approved.Use(middleware.ApprovalRequired(companyService))
			{
				approved.GET("/me/snippet", companyHandler.GetSnippet)
				approved.POST("/me/script/verify", companyHandler.VerifyScript)

				// Analytics additionally requires an active script
				analytics := approved.Group("")
				analytics.Use(middleware.ActiveScriptRequired(companyService))
				{
					analytics.GET("/me/analytics", companyHandler.GetAnalytics)
				}
			}
		}

		// Billing routes
		billing := v1.Group("/billing")
		{
			billing.GET("/plans", billingHandler.GetPlans)

			protected := billing.Group("")
			protected.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCompany))
			{
				protected.GET("/subscription", billingHandler.GetSubscription)
				protected.GET("/invoices", billingHandler.GetInvoices)
			}
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
		{
			adminCompanies := admin.Group("/companies")
			{
				adminCompanies.GET("", adminHandler.ListCompanies)
				adminCompanies.GET("/:id", adminHandler.GetCompany)
				adminCompanies.POST("/:id/review", adminHandler.StartReview)
				adminCompanies.POST("/:id/approve", adminHandler.ApproveCompany)
				adminCompanies.POST("/:id/reject", adminHandler.RejectCompany)
			}

			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/analytics", adminHandler.GetAnalytics)

			adminNotifications := admin.Group("/notifications")
			{
				adminNotifications.GET("", adminHandler.GetNotifications)
				adminNotifications.PUT("/:id/read", adminHandler.MarkNotificationRead)
			}

			adminSettings := admin.Group("/settings")
			{
				adminSettings.GET("", adminHandler.GetSettings)
				adminSettings.PUT("", adminHandler.UpdateSetting)
			}
		}
	}

	return r
}
