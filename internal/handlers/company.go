// internal/handlers/company.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/welolabs/welo-backend/internal/i18n"
	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/services"
	"github.com/welolabs/welo-backend/internal/utils"
)

type CompanyHandler struct {
	companyService  *services.CompanyService
	trackingService *services.TrackingService
	storageService  *services.StorageService
}

func NewCompanyHandler(companyService *services.CompanyService, trackingService *services.TrackingService, storageService *services.StorageService) *CompanyHandler {
	return &CompanyHandler{
		companyService:  companyService,
		trackingService: trackingService,
		storageService:  storageService,
	}
}

// POST /companies
func (h *CompanyHandler) Onboard(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.OnboardCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	company, err := h.companyService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrCompanyExists) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCompanyExists))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCompanyCreated),
		"company": company,
	})
}

// GET /companies/me
func (h *CompanyHandler) GetMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetByUserID(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	// A missing company is not an error: the client uses it to route
	// the user into onboarding.
	utils.SuccessResponse(c, gin.H{
		"company":   company,
		"onboarded": company != nil,
	})
}

// PUT /companies/me
func (h *CompanyHandler) UpdateMine(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	company, err := h.companyService.Update(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoCompany):
			utils.NotFoundResponse(c, "company")
		case errors.Is(err, services.ErrProfileLocked):
			utils.ForbiddenResponse(c, "PROFILE_LOCKED", i18n.T(lang, i18n.KeyCompanyProfileLocked), nil)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCompanyUpdated),
		"company": company,
	})
}

// GET /companies/me/status
func (h *CompanyHandler) GetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	flags, err := h.companyService.StatusFlags(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, flags)
}

// PUT /companies/me/branding
func (h *CompanyHandler) SetBranding(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.BrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	branding, err := h.companyService.SetBranding(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNoCompany) {
			utils.NotFoundResponse(c, "company")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyBrandingUpdated),
		"branding": branding,
	})
}

// POST /companies/me/documents
func (h *CompanyHandler) UploadDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.UploadOptions{
		Folder:  services.FolderDocuments,
		MaxSize: 10 * 1024 * 1024, // 10MB
		AllowedTypes: []string{
			"application/pdf",
			"image/jpeg",
			"image/png",
		},
	})
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	doc := &models.CompanyDocument{
		FileName: header.Filename,
		FileURL:  result.URL,
		FileSize: result.Size,
		MimeType: result.MimeType,
	}
	if err := h.companyService.AddDocument(userID, doc); err != nil {
		if errors.Is(err, services.ErrNoCompany) {
			utils.NotFoundResponse(c, "company")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyDocumentUploaded),
		"document": doc,
	})
}

// GET /companies/me/snippet
func (h *CompanyHandler) GetSnippet(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetByUserID(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if company == nil {
		utils.NotFoundResponse(c, "company")
		return
	}

	snippet, err := h.companyService.Snippet(company)
	if err != nil {
		if errors.Is(err, services.ErrNotApproved) {
			utils.ForbiddenResponse(c, "COMPANY_NOT_APPROVED", i18n.T(lang, i18n.KeyCompanyNotApproved), nil)
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, snippet)
}

// POST /companies/me/script/verify
func (h *CompanyHandler) VerifyScript(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetByUserID(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if company == nil {
		utils.NotFoundResponse(c, "company")
		return
	}
	if company.TrackingID == nil {
		utils.ForbiddenResponse(c, "COMPANY_NOT_APPROVED", i18n.T(lang, i18n.KeyCompanyNotApproved), nil)
		return
	}

	result, err := h.trackingService.VerifyInstallation(*company.TrackingID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	message := i18n.T(lang, i18n.KeyScriptNotDetected)
	if result.Verified {
		message = i18n.T(lang, i18n.KeyScriptVerified)
	}

	utils.SuccessResponse(c, gin.H{
		"message":       message,
		"verified":      result.Verified,
		"script_status": result.ScriptStatus,
		"last_event":    result.LastEvent,
	})
}

// GET /companies/me/analytics
func (h *CompanyHandler) GetAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetByUserID(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if company == nil {
		utils.NotFoundResponse(c, "company")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 || days > 365 {
		days = 30
	}

	perDay, err := h.trackingService.EventsPerDay(company.ID, days)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	recent, err := h.trackingService.RecentEvents(company.ID, 20)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"views_count":    company.ViewsCount,
		"events_per_day": perDay,
		"recent_events":  recent,
	})
}
