// internal/handlers/billing.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/welolabs/welo-backend/internal/services"
	"github.com/welolabs/welo-backend/internal/utils"
)

type BillingHandler struct {
	billingService *services.BillingService
	companyService *services.CompanyService
}

func NewBillingHandler(billingService *services.BillingService, companyService *services.CompanyService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		companyService: companyService,
	}
}

// GET /billing/plans
func (h *BillingHandler) GetPlans(c *gin.Context) {
	plans, err := h.billingService.Plans()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"plans": plans})
}

// GET /billing/subscription
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	company, ok := h.resolveCompany(c)
	if !ok {
		return
	}

	summary, err := h.billingService.SubscriptionForCompany(company)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			utils.NotFoundResponse(c, "company")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, summary)
}

// GET /billing/invoices
func (h *BillingHandler) GetInvoices(c *gin.Context) {
	company, ok := h.resolveCompany(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	invoices, err := h.billingService.Invoices(company, limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"invoices": invoices})
}

func (h *BillingHandler) resolveCompany(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, false
	}

	company, err := h.companyService.GetByUserID(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return uuid.Nil, false
	}
	if company == nil {
		utils.NotFoundResponse(c, "company")
		return uuid.Nil, false
	}
	return company.ID, true
}
