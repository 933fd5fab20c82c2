// internal/handlers/admin.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/welolabs/welo-backend/internal/i18n"
	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/services"
	"github.com/welolabs/welo-backend/internal/utils"
)

type AdminHandler struct {
	verificationService *services.VerificationService
	adminService        *services.AdminService
}

func NewAdminHandler(verificationService *services.VerificationService, adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		verificationService: verificationService,
		adminService:        adminService,
	}
}

// GET /admin/companies
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	filter := services.AdminCompanyFilter{
		PaginationParams: utils.GetPaginationParams(c),
		Country:          c.Query("country"),
	}

	if statusParam := c.Query("status"); statusParam != "" {
		status := models.CompanyStatus(statusParam)
		filter.Status = &status
	}

	companies, total, err := h.verificationService.ListCompanies(filter)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	result := utils.CreatePaginationResult(companies, total, filter.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /admin/companies/:id
func (h *AdminHandler) GetCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c)
	if !ok {
		return
	}

	company, err := h.verificationService.GetReviewDetail(companyID)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			utils.NotFoundResponse(c, "company")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"company": company})
}

// POST /admin/companies/:id/review
func (h *AdminHandler) StartReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	companyID, ok := parseIDParam(c)
	if !ok {
		return
	}
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	company, err := h.verificationService.StartReview(companyID, adminID)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewStarted),
		"company": company,
	})
}

// POST /admin/companies/:id/approve
func (h *AdminHandler) ApproveCompany(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	companyID, ok := parseIDParam(c)
	if !ok {
		return
	}
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	decision, err := h.verificationService.Approve(companyID, adminID)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":         i18n.T(lang, i18n.KeyCompanyApproved),
		"company":         decision.Company,
		"public_page_url": decision.PublicPageURL,
	})
}

// POST /admin/companies/:id/reject
func (h *AdminHandler) RejectCompany(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	companyID, ok := parseIDParam(c)
	if !ok {
		return
	}
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" validate:"required,not_blank"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyRejectionReasonMissing), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	decision, err := h.verificationService.Reject(companyID, adminID, req.Reason)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCompanyRejected),
		"company": decision.Company,
	})
}

func (h *AdminHandler) respondTransitionError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrCompanyNotFound):
		utils.NotFoundResponse(c, "company")
	case errors.Is(err, services.ErrReasonRequired):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyRejectionReasonMissing), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyReviewConflict))
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// GET /admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, stats)
}

// GET /admin/analytics
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 || days > 365 {
		days = 30
	}

	analytics, err := h.adminService.GetAnalytics(days)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, analytics)
}

// GET /admin/notifications
func (h *AdminHandler) GetNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.adminService.GetNotifications(limit, unreadOnly)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"notifications": notifications})
}

// PUT /admin/notifications/:id/read
func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	notificationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.adminService.MarkNotificationRead(notificationID); err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"read": true})
}

// GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.adminService.GetSettings()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"settings": settings})
}

// PUT /admin/settings
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Category string      `json:"category" validate:"required"`
		Key      string      `json:"key" validate:"required"`
		Value    interface{} `json:"value" validate:"required"`
		DataType string      `json:"data_type,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.adminService.UpdateSetting(req.Category, req.Key, req.Value, req.DataType, adminID); err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"updated": true})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
